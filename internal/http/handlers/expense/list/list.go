// Package list реализует HTTP-обработчик списка расходов пользователя.
//
// Список всегда принадлежит только текущему пользователю и отсортирован
// по дате по убыванию. Пустой список — валидный ответ.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/webtechhobbyist/expense-tracker/internal/http/middlewarectx"
	"github.com/webtechhobbyist/expense-tracker/internal/http/response"
	"github.com/webtechhobbyist/expense-tracker/internal/lib/sl"
	"github.com/webtechhobbyist/expense-tracker/internal/models"
	expenseservice "github.com/webtechhobbyist/expense-tracker/internal/services/expense"
)

// Item элемент списка в JSON-ответе: дата отдается строкой 2006-01-02,
// как её ожидает форма на клиенте.
type Item struct {
	ID       int     `json:"id"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
}

// Handler управляет HTTP-запросами списка расходов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка расходов.
type Service interface {
	List(ctx context.Context, userID int) ([]*models.Expense, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список расходов
// @Description Возвращает все расходы текущего пользователя, самые свежие первыми.
// @Tags Expenses
// @Produce  json
// @Success 200 {object} response.Response "data.expenses"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /expenses [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := r.Context().Value(middlewarectx.UserID).(int)
	if !ok || userID == 0 {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	expenses, err := h.service.List(r.Context(), userID)
	if err != nil {
		log.Error("failed to list expenses", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not retrieve expenses"))
		return
	}

	items := make([]Item, 0, len(expenses))
	for _, e := range expenses {
		items = append(items, Item{
			ID:       e.ID,
			Category: e.Category,
			Amount:   e.Amount,
			Date:     e.Date.Format(expenseservice.DateLayout),
		})
	}

	log.Info("expenses listed", slog.Int("count", len(items)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"expenses": items,
	}))
}
