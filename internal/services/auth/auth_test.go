package auth

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/webtechhobbyist/expense-tracker/internal/lib/password"
	"github.com/webtechhobbyist/expense-tracker/internal/models"
	"github.com/webtechhobbyist/expense-tracker/internal/storage/repository"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) RegisterUser(ctx context.Context, user models.User) (int, error) {
	args := m.Called(ctx, user)
	return args.Int(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUser(ctx context.Context, userID int) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type SessionRepoMock struct{ mock.Mock }

func (m *SessionRepoMock) CreateSession(ctx context.Context, session models.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *SessionRepoMock) GetSession(ctx context.Context, sid string) (*models.Session, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *SessionRepoMock) RefreshSession(ctx context.Context, sid string, expiry time.Time) error {
	return m.Called(ctx, sid, expiry).Error(0)
}

func (m *SessionRepoMock) DeleteSession(ctx context.Context, sid string) error {
	return m.Called(ctx, sid).Error(0)
}

func (m *SessionRepoMock) DeleteExpiredSessions(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newService(users *UserRepoMock, sessions *SessionRepoMock) *AuthService {
	return NewAuthService(users, sessions, time.Hour, newNoopLogger())
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("успешная регистрация, хранится только хэш", func(t *testing.T) {
		users := new(UserRepoMock)
		sessions := new(SessionRepoMock)
		svc := newService(users, sessions)

		users.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
			return u.Email == "alice@example.com" &&
				u.Username == "alice" &&
				u.PasswordHash != "secret123" &&
				password.CompareHash(u.PasswordHash, "secret123") == nil
		})).Return(42, nil)

		id, err := svc.Register(ctx, "alice@example.com", "alice", "secret123")
		require.NoError(t, err)
		assert.Equal(t, 42, id)
		users.AssertExpectations(t)
	})

	t.Run("занятый email превращается в ErrEmailTaken", func(t *testing.T) {
		users := new(UserRepoMock)
		sessions := new(SessionRepoMock)
		svc := newService(users, sessions)

		users.On("RegisterUser", mock.Anything, mock.AnythingOfType("models.User")).
			Return(0, repository.ErrEmailExists)

		_, err := svc.Register(ctx, "alice@example.com", "alice", "secret123")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("прочие ошибки репозитория проходят наружу", func(t *testing.T) {
		users := new(UserRepoMock)
		sessions := new(SessionRepoMock)
		svc := newService(users, sessions)

		repoErr := errors.New("db error")
		users.On("RegisterUser", mock.Anything, mock.AnythingOfType("models.User")).
			Return(0, repoErr)

		_, err := svc.Register(ctx, "alice@example.com", "alice", "secret123")
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := password.GetHash("secret123")
	require.NoError(t, err)
	storedUser := &models.User{ID: 7, Email: "alice@example.com", Username: "alice", PasswordHash: hash}

	t.Run("успешный вход создает сессию", func(t *testing.T) {
		users := new(UserRepoMock)
		sessions := new(SessionRepoMock)
		svc := newService(users, sessions)

		users.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(storedUser, nil)
		sessions.On("CreateSession", mock.Anything, mock.MatchedBy(func(s models.Session) bool {
			return s.UserID == 7 && s.SID != "" && s.Expiry.After(time.Now())
		})).Return(nil)

		user, sess, err := svc.Login(ctx, "alice@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, 7, user.ID)
		assert.NotEmpty(t, sess.SID)
		assert.Equal(t, 7, sess.UserID)
		sessions.AssertExpectations(t)
	})

	t.Run("неизвестный email", func(t *testing.T) {
		users := new(UserRepoMock)
		sessions := new(SessionRepoMock)
		svc := newService(users, sessions)

		users.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, sql.ErrNoRows)

		_, _, err := svc.Login(ctx, "ghost@example.com", "secret123")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("неверный пароль", func(t *testing.T) {
		users := new(UserRepoMock)
		sessions := new(SessionRepoMock)
		svc := newService(users, sessions)

		users.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(storedUser, nil)

		_, _, err := svc.Login(ctx, "alice@example.com", "wrongpass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		sessions.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
	})

	t.Run("ошибка сохранения сессии это ошибка входа", func(t *testing.T) {
		users := new(UserRepoMock)
		sessions := new(SessionRepoMock)
		svc := newService(users, sessions)

		saveErr := errors.New("db error")
		users.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(storedUser, nil)
		sessions.On("CreateSession", mock.Anything, mock.AnythingOfType("models.Session")).Return(saveErr)

		_, _, err := svc.Login(ctx, "alice@example.com", "secret123")
		assert.ErrorIs(t, err, saveErr)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	users := new(UserRepoMock)
	sessions := new(SessionRepoMock)
	svc := newService(users, sessions)

	sessions.On("DeleteSession", mock.Anything, "abc123").Return(nil)

	err := svc.Logout(ctx, "abc123")
	assert.NoError(t, err)
	sessions.AssertExpectations(t)
}

func TestAuthService_SessionUser(t *testing.T) {
	ctx := context.Background()

	storedUser := &models.User{ID: 7, Email: "alice@example.com", Username: "alice"}

	t.Run("живая сессия продлевается", func(t *testing.T) {
		users := new(UserRepoMock)
		sessions := new(SessionRepoMock)
		svc := newService(users, sessions)

		oldExpiry := time.Now().Add(10 * time.Minute)
		sessions.On("GetSession", mock.Anything, "abc123").
			Return(&models.Session{SID: "abc123", UserID: 7, Expiry: oldExpiry}, nil)
		users.On("GetUser", mock.Anything, 7).Return(storedUser, nil)
		sessions.On("RefreshSession", mock.Anything, "abc123", mock.AnythingOfType("time.Time")).
			Return(nil)

		user, sess, err := svc.SessionUser(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, 7, user.ID)
		assert.True(t, sess.Expiry.After(oldExpiry))
		sessions.AssertExpectations(t)
	})

	t.Run("сессии нет", func(t *testing.T) {
		users := new(UserRepoMock)
		sessions := new(SessionRepoMock)
		svc := newService(users, sessions)

		sessions.On("GetSession", mock.Anything, "expired").Return(nil, sql.ErrNoRows)

		_, _, err := svc.SessionUser(ctx, "expired")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("владелец сессии исчез", func(t *testing.T) {
		users := new(UserRepoMock)
		sessions := new(SessionRepoMock)
		svc := newService(users, sessions)

		sessions.On("GetSession", mock.Anything, "abc123").
			Return(&models.Session{SID: "abc123", UserID: 7, Expiry: time.Now().Add(time.Hour)}, nil)
		users.On("GetUser", mock.Anything, 7).Return(nil, sql.ErrNoRows)

		_, _, err := svc.SessionUser(ctx, "abc123")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("неудачное продление не отклоняет запрос", func(t *testing.T) {
		users := new(UserRepoMock)
		sessions := new(SessionRepoMock)
		svc := newService(users, sessions)

		oldExpiry := time.Now().Add(10 * time.Minute)
		sessions.On("GetSession", mock.Anything, "abc123").
			Return(&models.Session{SID: "abc123", UserID: 7, Expiry: oldExpiry}, nil)
		users.On("GetUser", mock.Anything, 7).Return(storedUser, nil)
		sessions.On("RefreshSession", mock.Anything, "abc123", mock.AnythingOfType("time.Time")).
			Return(errors.New("db error"))

		user, sess, err := svc.SessionUser(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, 7, user.ID)
		assert.Equal(t, oldExpiry, sess.Expiry)
	})
}

func TestAuthService_RunSessionCleanup(t *testing.T) {
	t.Run("истёкшие сессии чистятся по тикеру", func(t *testing.T) {
		users := new(UserRepoMock)
		sessions := new(SessionRepoMock)
		svc := newService(users, sessions)

		cleaned := make(chan struct{}, 1)
		sessions.On("DeleteExpiredSessions", mock.Anything).
			Run(func(_ mock.Arguments) {
				select {
				case cleaned <- struct{}{}:
				default:
				}
			}).
			Return(2, nil)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go svc.RunSessionCleanup(ctx, 10*time.Millisecond)

		select {
		case <-cleaned:
		case <-time.After(time.Second):
			t.Fatal("cleanup was not triggered")
		}
	})

	t.Run("остановка по отмене контекста", func(t *testing.T) {
		users := new(UserRepoMock)
		sessions := new(SessionRepoMock)
		svc := newService(users, sessions)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		done := make(chan struct{})
		go func() {
			svc.RunSessionCleanup(ctx, time.Hour)
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("cleanup loop did not stop on context cancellation")
		}
		sessions.AssertNotCalled(t, "DeleteExpiredSessions", mock.Anything)
	})

	t.Run("ошибка чистки не останавливает цикл", func(t *testing.T) {
		users := new(UserRepoMock)
		sessions := new(SessionRepoMock)
		svc := newService(users, sessions)

		calls := make(chan struct{}, 2)
		sessions.On("DeleteExpiredSessions", mock.Anything).
			Run(func(_ mock.Arguments) {
				select {
				case calls <- struct{}{}:
				default:
				}
			}).
			Return(0, errors.New("db error"))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go svc.RunSessionCleanup(ctx, 10*time.Millisecond)

		for range 2 {
			select {
			case <-calls:
			case <-time.After(time.Second):
				t.Fatal("cleanup loop stopped after an error")
			}
		}
	})
}

func TestAuthService_CheckSession(t *testing.T) {
	ctx := context.Background()

	t.Run("пустой идентификатор это гость", func(t *testing.T) {
		users := new(UserRepoMock)
		sessions := new(SessionRepoMock)
		svc := newService(users, sessions)

		loggedIn, err := svc.CheckSession(ctx, "")
		require.NoError(t, err)
		assert.False(t, loggedIn)
		sessions.AssertNotCalled(t, "GetSession", mock.Anything, mock.Anything)
	})

	t.Run("живая сессия", func(t *testing.T) {
		users := new(UserRepoMock)
		sessions := new(SessionRepoMock)
		svc := newService(users, sessions)

		sessions.On("GetSession", mock.Anything, "abc123").
			Return(&models.Session{SID: "abc123", UserID: 7, Expiry: time.Now().Add(time.Hour)}, nil)

		loggedIn, err := svc.CheckSession(ctx, "abc123")
		require.NoError(t, err)
		assert.True(t, loggedIn)
		// Проба не мутирует: продления нет.
		sessions.AssertNotCalled(t, "RefreshSession", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("истёкшая сессия это гость, не ошибка", func(t *testing.T) {
		users := new(UserRepoMock)
		sessions := new(SessionRepoMock)
		svc := newService(users, sessions)

		sessions.On("GetSession", mock.Anything, "expired").Return(nil, sql.ErrNoRows)

		loggedIn, err := svc.CheckSession(ctx, "expired")
		require.NoError(t, err)
		assert.False(t, loggedIn)
	})

	t.Run("ошибка хранилища", func(t *testing.T) {
		users := new(UserRepoMock)
		sessions := new(SessionRepoMock)
		svc := newService(users, sessions)

		sessions.On("GetSession", mock.Anything, "abc123").Return(nil, errors.New("db error"))

		loggedIn, err := svc.CheckSession(ctx, "abc123")
		assert.Error(t, err)
		assert.False(t, loggedIn)
	})
}
