// Package currentuser отдает имя аутентифицированного пользователя.
//
// Маршрут стоит за сессионным middleware: имя берется из контекста
// запроса, повторного похода в хранилище нет.
package currentuser

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/webtechhobbyist/expense-tracker/internal/http/middlewarectx"
	"github.com/webtechhobbyist/expense-tracker/internal/http/response"
)

// Handler обрабатывает запросы текущего пользователя.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Description Возвращает имя пользователя активной сессии.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "data.username"
// @Failure 401 {object} response.ErrorResponse "Нет активной сессии"
// @Router /current-user [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.currentuser"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := r.Context().Value(middlewarectx.Username).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"username": username,
	}))
}
