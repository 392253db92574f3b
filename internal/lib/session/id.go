// Package session реализует работу с клиентской частью сессии:
// генерацию непрозрачных идентификаторов и выдачу/очистку httpOnly-куки.
// Серверная запись сессии хранится в базе данных, см. internal/storage/repository.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateID генерирует криптостойкий идентификатор сессии.
// 32 байта = 256 бит энтропии, кодируется в base64 без паддинга.
func GenerateID() (string, error) {
	const op = "session.GenerateID"

	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
