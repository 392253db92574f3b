// Package models содержит доменные структуры приложения: пользователей,
// расходы и сессии, а также вспомогательные типы для приёма данных
// из JSON-запросов.
package models

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int    // Уникальный идентификатор пользователя
	Email        string // Электронная почта (уникальная)
	Username     string // Имя пользователя
	PasswordHash string // Bcrypt-хэш пароля, исходный пароль нигде не хранится
}
