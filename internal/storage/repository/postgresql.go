// Package repository реализует хранилище данных на основе PostgreSQL
// для пользователей, расходов и сессий. Предоставляет методы создания,
// чтения, обновления и удаления записей. Консистентность (уникальность
// email, владение записями) обеспечивается на уровне отдельных SQL-операторов,
// многооператорные транзакции не используются.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrEmailExists возвращается при попытке зарегистрировать пользователя
// с уже занятым email (нарушение уникального индекса).
var ErrEmailExists = errors.New("email already exists")

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями, расходами и сессиями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'expenses'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table expenses missing or query error: %w", err)
	}
	return nil
}
