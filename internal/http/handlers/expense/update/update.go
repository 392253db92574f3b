// Package update реализует HTTP-обработчик изменения расхода.
//
// Обновление выполняется только по паре (id, владелец): запись другого
// пользователя и несуществующая запись отвечают одинаковым 404,
// чтобы не раскрывать существование чужих данных.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/webtechhobbyist/expense-tracker/internal/http/middlewarectx"
	"github.com/webtechhobbyist/expense-tracker/internal/http/response"
	"github.com/webtechhobbyist/expense-tracker/internal/lib/sl"
	"github.com/webtechhobbyist/expense-tracker/internal/models"
	expenseservice "github.com/webtechhobbyist/expense-tracker/internal/services/expense"
)

// Handler управляет HTTP-запросами на изменение расходов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики изменения расхода.
type Service interface {
	Update(ctx context.Context, req models.DummyExpense, id, userID int) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменить расход
// @Description Обновляет категорию, сумму и дату расхода текущего пользователя.
// @Tags Expenses
// @Accept  json
// @Produce  json
// @Param id path int true "ID записи"
// @Param request body models.DummyExpense true "Новые данные расхода"
// @Success 200 {object} response.Response "Успешное обновление"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, id, сумма или дата"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Записи нет или она чужая"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /expenses/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.update"
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

	var req models.DummyExpense
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userID, ok := r.Context().Value(middlewarectx.UserID).(int)
	if !ok || userID == 0 {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.Update(r.Context(), req, id, userID); err != nil {
		switch {
		case errors.Is(err, expenseservice.ErrExpenseNotFound):
			log.Info("expense not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("expense not found"))
		case errors.Is(err, expenseservice.ErrInvalidAmount), errors.Is(err, expenseservice.ErrInvalidDate):
			log.Info("malformed expense fields", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
		default:
			log.Error("failed to update expense", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update expense"))
		}
		return
	}

	log.Info("expense updated", slog.Int("id", id))
	render.JSON(w, r, response.OK())
}
