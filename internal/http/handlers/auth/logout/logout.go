// Package logout реализует HTTP-обработчик выхода из системы.
//
// Обработчик идемпотентен: выход без активной сессии тоже успешен.
// Поэтому маршрут стоит вне сессионного middleware и сам читает куку.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/webtechhobbyist/expense-tracker/internal/http/response"
	libsession "github.com/webtechhobbyist/expense-tracker/internal/lib/session"
	"github.com/webtechhobbyist/expense-tracker/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы на выход.
type Handler struct {
	log        *slog.Logger
	service    Service
	cookieOpts libsession.CookieOptions
}

// Service описывает интерфейс бизнес-логики выхода.
type Service interface {
	Logout(ctx context.Context, sid string) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, cookieOpts libsession.CookieOptions) *Handler {
	return &Handler{
		log:        log,
		service:    service,
		cookieOpts: cookieOpts,
	}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Удаляет серверную сессию и очищает куку. Идемпотентен.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Успешный выход"
// @Failure 500 {object} response.ErrorResponse "Не удалось удалить сессию"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	cookie, err := r.Cookie(libsession.CookieName)
	if err == nil && cookie.Value != "" {
		if err := h.service.Logout(r.Context(), cookie.Value); err != nil {
			log.Error("failed to destroy session", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not log out"))
			return
		}
	}

	libsession.ClearCookie(w, h.cookieOpts)

	log.Info("logout success")
	render.JSON(w, r, response.OK())
}
