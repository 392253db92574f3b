package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/webtechhobbyist/expense-tracker/internal/http/middlewarectx"
	"github.com/webtechhobbyist/expense-tracker/internal/models"
	expenseservice "github.com/webtechhobbyist/expense-tracker/internal/services/expense"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, userID int, req models.DummyExpense) (int, error) {
	args := m.Called(ctx, userID, req)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCreateHandler(t *testing.T) {
	logger := newNoopLogger()

	tests := []struct {
		name           string
		requestBody    interface{}
		userID         int
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное создание расхода",
			requestBody: models.DummyExpense{
				Category: "Groceries",
				Amount:   "42.50",
				Date:     "2026-08-15",
			},
			userID: 7,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, 7, mock.AnythingOfType("models.DummyExpense")).
					Return(11, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"id":11`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			userID:         7,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name: "ошибка валидации",
			requestBody: models.DummyExpense{
				Category: "",
				Amount:   "",
				Date:     "",
			},
			userID:         7,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Category is a required field, field Amount is a required field, field Date is a required field`,
		},
		{
			name: "отсутствует авторизация",
			requestBody: models.DummyExpense{
				Category: "Groceries",
				Amount:   "42.50",
				Date:     "2026-08-15",
			},
			userID:         0,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name: "некорректная сумма",
			requestBody: models.DummyExpense{
				Category: "Groceries",
				Amount:   "-5",
				Date:     "2026-08-15",
			},
			userID: 7,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, 7, mock.AnythingOfType("models.DummyExpense")).
					Return(0, expenseservice.ErrInvalidAmount)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `amount must be a decimal greater than zero`,
		},
		{
			name: "некорректная дата",
			requestBody: models.DummyExpense{
				Category: "Groceries",
				Amount:   "42.50",
				Date:     "15/08/2026",
			},
			userID: 7,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, 7, mock.AnythingOfType("models.DummyExpense")).
					Return(0, expenseservice.ErrInvalidDate)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `date must be in format 2006-01-02`,
		},
		{
			name: "ошибка сервиса",
			requestBody: models.DummyExpense{
				Category: "Groceries",
				Amount:   "42.50",
				Date:     "2026-08-15",
			},
			userID: 7,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, 7, mock.AnythingOfType("models.DummyExpense")).
					Return(0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not create expense"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/expenses", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			if tt.userID != 0 {
				ctx = context.WithValue(ctx, middlewarectx.UserID, tt.userID)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
