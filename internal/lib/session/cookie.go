package session

import (
	"net/http"
	"time"
)

// CookieName имя куки, в которой клиент хранит идентификатор сессии.
const CookieName = "session_id"

// CookieOptions определяет атрибуты выдаваемой сессионной куки.
// Secure/SameSite/Domain зависят от окружения и приходят из конфига.
type CookieOptions struct {
	Path     string
	Secure   bool
	SameSite http.SameSite
	Domain   string
}

// normalize подставляет безопасные значения по умолчанию.
func (o CookieOptions) normalize() CookieOptions {
	if o.Path == "" {
		o.Path = "/"
	}
	return o
}

// SetCookie выдает клиенту сессионную куку. Кука всегда httpOnly,
// срок действия совпадает со сроком серверной записи сессии.
func SetCookie(w http.ResponseWriter, sid string, expiry time.Time, opts CookieOptions) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sid,
		Path:     opts.Path,
		Domain:   opts.Domain,
		Expires:  expiry,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// ClearCookie удаляет сессионную куку у клиента.
func ClearCookie(w http.ResponseWriter, opts CookieOptions) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     opts.Path,
		Domain:   opts.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}
