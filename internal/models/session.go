package models

import "time"

// Session представляет серверную запись сессии: непрозрачный токен,
// привязанный к пользователю, с абсолютным сроком действия.
// Клиент хранит только SID в httpOnly-куке.
type Session struct {
	SID    string    // Непрозрачный идентификатор сессии
	UserID int       // Пользователь, которому принадлежит сессия
	Expiry time.Time // Момент истечения сессии
}
