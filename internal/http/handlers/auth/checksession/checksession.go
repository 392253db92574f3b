// Package checksession реализует read-only пробу сессии.
//
// Отвечает всегда 200, различая состояния полем data.loggedIn.
// Состояние сессии не меняется, срок не продлевается.
package checksession

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

// Handler обрабатывает запросы проверки сессии.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс пробы сессии.
type Service interface {
	CheckSession(ctx context.Context, sid string) (bool, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Проверка сессии
// @Description Сообщает, жива ли сессия клиента. Никогда не мутирует состояние.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "data.loggedIn"
// @Router /check-session [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.checksession"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var sid string
	if cookie, err := r.Cookie(libsession.CookieName); err == nil {
		sid = cookie.Value
	}

	loggedIn, err := h.service.CheckSession(r.Context(), sid)
	if err != nil {
		// Проба не должна падать из-за хранилища: считаем гостя гостем.
		log.Error("failed to check session", sl.Err(err))
		loggedIn = false
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"loggedIn": loggedIn,
	}))
}
