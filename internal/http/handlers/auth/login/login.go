// Package login реализует HTTP-обработчик для входа пользователей.
//
// Handler декодирует email и пароль, валидирует их и делегирует вход
// сервису аутентификации. При успехе сессия уже сохранена в базе,
// клиенту выдаётся httpOnly-кука с её идентификатором и JSON с userId.
// Неизвестный email и неверный пароль различаются статусами (404 и 400).
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/webtechhobbyist/expense-tracker/internal/http/response"
	libsession "github.com/webtechhobbyist/expense-tracker/internal/lib/session"
	"github.com/webtechhobbyist/expense-tracker/internal/lib/sl"
	"github.com/webtechhobbyist/expense-tracker/internal/models"
	authservice "github.com/webtechhobbyist/expense-tracker/internal/services/auth"
)

// Request — структура входных данных для входа.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Handler обрабатывает HTTP-запросы на вход.
type Handler struct {
	log        *slog.Logger
	service    Service
	cookieOpts libsession.CookieOptions
	validate   *validator.Validate
}

// Service описывает интерфейс бизнес-логики входа.
//
// Login обязан сохранить сессию до возврата: ошибка сохранения —
// это ошибка входа, а не тихий частичный логин.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.User, *models.Session, error)
}

// New создает новый Handler с переданными логгером, сервисом и настройками куки.
func New(log *slog.Logger, service Service, cookieOpts libsession.CookieOptions) *Handler {
	return &Handler{
		log:        log,
		service:    service,
		cookieOpts: cookieOpts,
		validate:   validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет email и пароль, создает сессию и выдает httpOnly-куку.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} response.Response "Успешный вход, data.userId"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или неверный пароль"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Не удалось сохранить сессию"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("email", req.Email))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, sess, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrUserNotFound):
			log.Info("user not found", slog.String("email", req.Email))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		case errors.Is(err, authservice.ErrInvalidCredentials):
			log.Info("invalid credentials", slog.String("email", req.Email))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid email or password"))
		default:
			log.Error("login failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not log in"))
		}
		return
	}

	libsession.SetCookie(w, sess.SID, sess.Expiry, h.cookieOpts)

	log.Info("login success", slog.Int("user_id", user.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"userId": user.ID,
	}))
}
