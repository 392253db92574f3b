// Package auth содержит бизнес-логику регистрации, входа, выхода
// и проверки сессий. Сессия — серверная запись с непрозрачным токеном,
// клиент получает только идентификатор в httpOnly-куке.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/webtechhobbyist/expense-tracker/internal/lib/password"
	"github.com/webtechhobbyist/expense-tracker/internal/lib/session"
	"github.com/webtechhobbyist/expense-tracker/internal/lib/sl"
	"github.com/webtechhobbyist/expense-tracker/internal/models"
	"github.com/webtechhobbyist/expense-tracker/internal/storage/repository"
)

// Ошибки уровня бизнес-логики. Обработчики сопоставляют их с HTTP-статусами.
var (
	// ErrEmailTaken email уже занят другим пользователем.
	ErrEmailTaken = errors.New("email already taken")
	// ErrUserNotFound пользователь с таким email не зарегистрирован.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials пароль не совпал с хэшем.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionNotFound сессии нет или она истекла.
	ErrSessionNotFound = errors.New("session not found")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его ID.
	RegisterUser(ctx context.Context, user models.User) (int, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по ID.
	GetUser(ctx context.Context, userID int) (*models.User, error)
}

// SessionRepository описывает контракт для работы с сессиями в базе данных.
type SessionRepository interface {
	// CreateSession сохраняет новую сессию.
	CreateSession(ctx context.Context, session models.Session) error

	// GetSession возвращает неистёкшую сессию по идентификатору.
	GetSession(ctx context.Context, sid string) (*models.Session, error)

	// RefreshSession продлевает сессию до нового срока.
	RefreshSession(ctx context.Context, sid string, expiry time.Time) error

	// DeleteSession удаляет сессию, отсутствие записи не ошибка.
	DeleteSession(ctx context.Context, sid string) error

	// DeleteExpiredSessions чистит истёкшие записи и возвращает их количество.
	DeleteExpiredSessions(ctx context.Context) (int, error)
}

// AuthService отвечает за регистрацию, вход, выход и валидацию сессий.
type AuthService struct {
	users    UserRepository
	sessions SessionRepository
	ttl      time.Duration
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
// ttl задаёт время жизни сессии (не больше суток по умолчанию конфига).
func NewAuthService(users UserRepository, sessions SessionRepository, ttl time.Duration, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		ttl:      ttl,
		log:      log,
	}
}

// Register создает нового пользователя, храня только bcrypt-хэш пароля.
// Занятый email превращается в ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, email, username, rawPassword string) (int, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return 0, err
	}
	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
	}
	id, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return 0, ErrEmailTaken
		}
		return 0, err
	}
	s.log.Info("registered new user", slog.Int("user_id", id))
	return id, nil
}

// Login проверяет пароль пользователя и создает новую сессию.
// Сессия сохраняется в базе до того, как вызывающая сторона ответит клиенту:
// ошибка сохранения — это ошибка входа, а не тихий частичный логин.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, *models.Session, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	sid, err := session.GenerateID()
	if err != nil {
		return nil, nil, err
	}
	sess := models.Session{
		SID:    sid,
		UserID: user.ID,
		Expiry: time.Now().Add(s.ttl),
	}
	if err := s.sessions.CreateSession(ctx, sess); err != nil {
		return nil, nil, err
	}

	s.log.Info("user logged in", slog.Int("user_id", user.ID))
	return user, &sess, nil
}

// Logout удаляет сессию. Идемпотентен: повторный выход или выход
// с несуществующей сессией проходит без ошибки.
func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.sessions.DeleteSession(ctx, sid)
}

// SessionUser валидирует сессию и возвращает её владельца.
// Попутно продлевает сессию (скользящее истечение): каждая аутентифицированная
// активность сдвигает срок на ttl вперёд. Если продлить не удалось,
// запрос не отклоняется — сессия остаётся со старым сроком.
func (s *AuthService) SessionUser(ctx context.Context, sid string) (*models.User, *models.Session, error) {
	sess, err := s.sessions.GetSession(ctx, sid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}

	user, err := s.users.GetUser(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}

	newExpiry := time.Now().Add(s.ttl)
	if err := s.sessions.RefreshSession(ctx, sess.SID, newExpiry); err != nil {
		s.log.Warn("failed to refresh session", sl.Err(err))
	} else {
		sess.Expiry = newExpiry
	}
	return user, sess, nil
}

// RunSessionCleanup периодически удаляет истёкшие сессии, пока не отменён
// контекст. Истёкшие записи и так невидимы для GetSession, но без чистки
// таблица сессий растёт неограниченно.
func (s *AuthService) RunSessionCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := s.sessions.DeleteExpiredSessions(ctx)
			if err != nil {
				s.log.Error("failed to delete expired sessions", sl.Err(err))
				continue
			}
			if count > 0 {
				s.log.Info("deleted expired sessions", slog.Int("count", count))
			}
		}
	}
}

// CheckSession read-only проба: есть ли живая сессия с таким идентификатором.
// Состояние сессии не меняет.
func (s *AuthService) CheckSession(ctx context.Context, sid string) (bool, error) {
	if sid == "" {
		return false, nil
	}
	_, err := s.sessions.GetSession(ctx, sid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
