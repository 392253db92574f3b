// Package remove реализует HTTP-обработчик удаления расхода.
//
// Семантика владения та же, что у изменения: чужая и несуществующая
// записи дают одинаковый 404.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/webtechhobbyist/expense-tracker/internal/http/middlewarectx"
	"github.com/webtechhobbyist/expense-tracker/internal/http/response"
	"github.com/webtechhobbyist/expense-tracker/internal/lib/sl"
	expenseservice "github.com/webtechhobbyist/expense-tracker/internal/services/expense"
)

// Handler управляет HTTP-запросами на удаление расходов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления расхода.
type Service interface {
	Remove(ctx context.Context, id, userID int) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить расход
// @Description Удаляет расход текущего пользователя.
// @Tags Expenses
// @Produce  json
// @Param id path int true "ID записи"
// @Success 200 {object} response.Response "Успешное удаление"
// @Failure 400 {object} response.ErrorResponse "Некорректный id"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Записи нет или она чужая"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /expenses/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	userID, ok := r.Context().Value(middlewarectx.UserID).(int)
	if !ok || userID == 0 {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.Remove(r.Context(), id, userID); err != nil {
		if errors.Is(err, expenseservice.ErrExpenseNotFound) {
			log.Info("expense not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("expense not found"))
			return
		}
		log.Error("failed to remove expense", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete expense"))
		return
	}

	log.Info("expense removed", slog.Int("id", id))
	render.JSON(w, r, response.OK())
}
