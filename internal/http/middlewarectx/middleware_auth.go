// Package middlewarectx содержит HTTP middleware приложения: проверку
// сессионной куки, CORS, ограничение частоты запросов и счётчик запросов.
//
// SessionMiddleware проверяет наличие и валидность сессионной куки,
// находит сессию в хранилище и в случае успеха добавляет в контекст
// идентификатор и имя пользователя для дальнейшего использования
// в обработчиках. Попутно кука переиздаётся с продлённым сроком
// (скользящее истечение).
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized — до любого
// обращения обработчика к хранилищу расходов.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/webtechhobbyist/expense-tracker/internal/http/response"
	libsession "github.com/webtechhobbyist/expense-tracker/internal/lib/session"
	"github.com/webtechhobbyist/expense-tracker/internal/lib/sl"
	"github.com/webtechhobbyist/expense-tracker/internal/models"
	authservice "github.com/webtechhobbyist/expense-tracker/internal/services/auth"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserID — ключ для идентификатора пользователя в контексте
	UserID Key = "user_id"
	// Username — ключ для имени пользователя в контексте
	Username Key = "username"
)

// Service описывает интерфейс сервиса для валидации сессии.
type Service interface {
	SessionUser(ctx context.Context, sid string) (*models.User, *models.Session, error)
}

// SessionMiddleware возвращает HTTP middleware, который проверяет сессионную куку.
//
// Если сессия жива, добавляет идентификатор и имя пользователя в контекст
// запроса и переиздаёт куку с новым сроком, иначе возвращает 401 Unauthorized.
func SessionMiddleware(service Service, cookieOpts libsession.CookieOptions, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			cookie, err := r.Cookie(libsession.CookieName)
			if err != nil || cookie.Value == "" {
				log.Info("missing session cookie")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			user, sess, err := service.SessionUser(r.Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, authservice.ErrSessionNotFound) {
					log.Info("session not found or expired")
					w.WriteHeader(http.StatusUnauthorized)
					render.JSON(w, r, response.Error("unauthorized"))
					return
				}
				log.Error("failed to validate session", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal error"))
				return
			}

			libsession.SetCookie(w, sess.SID, sess.Expiry, cookieOpts)

			ctx := context.WithValue(r.Context(), UserID, user.ID)
			ctx = context.WithValue(ctx, Username, user.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
