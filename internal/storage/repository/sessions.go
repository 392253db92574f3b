package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/webtechhobbyist/expense-tracker/internal/models"
)

// CreateSession сохраняет новую сессию пользователя.
func (s *Storage) CreateSession(ctx context.Context, session models.Session) error {
	const op = "storage.CreateSession"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO sessions (sid, user_id, expiry)
			  VALUES ($1, $2, $3)`
	if _, err := s.DB.ExecContext(ctx, query,
		session.SID, session.UserID, session.Expiry); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSession возвращает неистёкшую сессию по её идентификатору.
// Истёкшие записи не отдаются: сравнение с NOW() на стороне базы.
func (s *Storage) GetSession(ctx context.Context, sid string) (*models.Session, error) {
	const op = "storage.GetSession"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT sid, user_id, expiry
			  FROM sessions
			  WHERE sid = $1 AND expiry > NOW()`
	result := &models.Session{}
	row := s.DB.QueryRowContext(ctx, query, sid)
	if err := row.Scan(&result.SID, &result.UserID, &result.Expiry); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RefreshSession продлевает сессию до нового срока (скользящее истечение).
func (s *Storage) RefreshSession(ctx context.Context, sid string, expiry time.Time) error {
	const op = "storage.RefreshSession"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE sessions SET expiry = $1 WHERE sid = $2`
	if _, err := s.DB.ExecContext(ctx, query, expiry, sid); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteSession удаляет сессию. Отсутствие записи ошибкой не считается:
// выход из системы идемпотентен.
func (s *Storage) DeleteSession(ctx context.Context, sid string) error {
	const op = "storage.DeleteSession"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM sessions WHERE sid = $1`
	if _, err := s.DB.ExecContext(ctx, query, sid); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteExpiredSessions чистит истёкшие записи и возвращает их количество.
func (s *Storage) DeleteExpiredSessions(ctx context.Context) (int, error) {
	const op = "storage.DeleteExpiredSessions"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM sessions WHERE expiry <= NOW()`
	result, err := s.DB.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
