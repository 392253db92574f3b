// Package expensetracker предоставляет маршруты основного приложения.
package expensetracker

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/webtechhobbyist/expense-tracker/internal/http/handlers/auth/checksession"
	"github.com/webtechhobbyist/expense-tracker/internal/http/handlers/auth/currentuser"
	"github.com/webtechhobbyist/expense-tracker/internal/http/handlers/auth/login"
	"github.com/webtechhobbyist/expense-tracker/internal/http/handlers/auth/logout"
	"github.com/webtechhobbyist/expense-tracker/internal/http/handlers/auth/register"
	"github.com/webtechhobbyist/expense-tracker/internal/http/handlers/expense/create"
	"github.com/webtechhobbyist/expense-tracker/internal/http/handlers/expense/list"
	"github.com/webtechhobbyist/expense-tracker/internal/http/handlers/expense/remove"
	"github.com/webtechhobbyist/expense-tracker/internal/http/handlers/expense/update"
	"github.com/webtechhobbyist/expense-tracker/internal/http/middlewarectx"
	libsession "github.com/webtechhobbyist/expense-tracker/internal/lib/session"
	authservice "github.com/webtechhobbyist/expense-tracker/internal/services/auth"
	expenseservice "github.com/webtechhobbyist/expense-tracker/internal/services/expense"
	"github.com/webtechhobbyist/expense-tracker/web"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, auth *authservice.AuthService,
	expenses *expenseservice.ExpenseService, cookieOpts libsession.CookieOptions, allowedOrigins []string) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.CORSMiddleware(allowedOrigins),
		middlewarectx.MetricsMiddleware(),
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, auth).ServeHTTP)
		r.Post("/login", login.New(logger, auth, cookieOpts).ServeHTTP)
		r.Post("/logout", logout.New(logger, auth, cookieOpts).ServeHTTP)
		r.Get("/check-session", checksession.New(logger, auth).ServeHTTP)

		// Группа за сессионным middleware
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(auth, cookieOpts, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/current-user", currentuser.New(logger).ServeHTTP)
			r.Post("/expenses", create.New(logger, expenses).ServeHTTP)
			r.Get("/expenses", list.New(logger, expenses).ServeHTTP)
			r.Put("/expenses/{id}", update.New(logger, expenses).ServeHTTP)
			r.Delete("/expenses/{id}", remove.New(logger, expenses).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)

	// Статический фронтенд: login.html, register.html, index.html
	staticFS, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic(err)
	}
	r.Handle("/*", http.FileServer(http.FS(staticFS)))
}
