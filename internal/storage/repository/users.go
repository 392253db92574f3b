package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/webtechhobbyist/expense-tracker/internal/models"
)

// uniqueViolation код SQLSTATE нарушения уникального ограничения.
const uniqueViolation = "23505"

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его ID.
// При занятом email возвращает ErrEmailExists.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (int, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO users (email, username, password_hash)
			  VALUES ($1, $2, $3)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PasswordHash).Scan(&newID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, fmt.Errorf("%s: %w", op, ErrEmailExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByEmail возвращает пользователя по его email.
// Если пользователь не найден, возвращает sql.ErrNoRows в цепочке ошибки.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, username, password_hash
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его ID.
func (s *Storage) GetUser(ctx context.Context, userID int) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, username, password_hash
			  FROM users
			  WHERE id = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, userID)
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
