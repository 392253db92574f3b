package middlewarectx

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "expense_tracker_http_requests_total",
		Help: "Количество HTTP-запросов по методу, пути и статусу ответа.",
	},
	[]string{"method", "path", "status"},
)

// MetricsMiddleware считает запросы для /metrics.
// Путь берётся из шаблона маршрута chi, чтобы не плодить метки на каждый id.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				path = rctx.RoutePattern()
			}
			requestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(ww.Status())).Inc()
		})
	}
}
