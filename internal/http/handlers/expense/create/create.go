// Package create реализует HTTP-обработчик для добавления расходов.
//
// Handler принимает JSON-запрос с категорией, суммой и датой, валидирует
// поля, извлекает владельца из контекста и делегирует создание записи
// сервису. Возвращает 201 и ID созданной записи.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/webtechhobbyist/expense-tracker/internal/http/middlewarectx"
	"github.com/webtechhobbyist/expense-tracker/internal/http/response"
	"github.com/webtechhobbyist/expense-tracker/internal/lib/sl"
	"github.com/webtechhobbyist/expense-tracker/internal/models"
	expenseservice "github.com/webtechhobbyist/expense-tracker/internal/services/expense"
)

// Handler управляет HTTP-запросами на создание расходов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания расхода.
type Service interface {
	Create(ctx context.Context, userID int, req models.DummyExpense) (int, error)
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
// @Summary Добавить расход
// @Description Создает запись расхода для текущего пользователя.
// @Tags Expenses
// @Accept  json
// @Produce  json
// @Param request body models.DummyExpense true "Данные расхода"
// @Success 201 {object} response.Response "data.id созданной записи"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, сумма или дата"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /expenses [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	id, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, expenseservice.ErrInvalidAmount) || errors.Is(err, expenseservice.ErrInvalidDate) {
			log.Info("malformed expense fields", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		log.Error("failed to create expense", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create expense"))
		return
	}

	log.Info("expense created", slog.Int("id", id))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
