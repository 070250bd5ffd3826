// Package userstable собирает HTTP-сервис таблицы пользователей: маршруты, зависимости и запуск.
package userstable

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/users-table/internal/http/handlers/health"
	"github.com/magabrotheeeer/users-table/internal/http/handlers/page"
	"github.com/magabrotheeeer/users-table/internal/http/handlers/theme/get"
	themetoggle "github.com/magabrotheeeer/users-table/internal/http/handlers/theme/toggle"
	"github.com/magabrotheeeer/users-table/internal/http/handlers/users/list"
	userspage "github.com/magabrotheeeer/users-table/internal/http/handlers/users/page"
	"github.com/magabrotheeeer/users-table/internal/http/handlers/users/reload"
	"github.com/magabrotheeeer/users-table/internal/http/handlers/users/remove"
	"github.com/magabrotheeeer/users-table/internal/http/handlers/users/sortby"
	"github.com/magabrotheeeer/users-table/internal/http/handlers/users/toggle"
	"github.com/magabrotheeeer/users-table/internal/http/middlewarectx"
	"github.com/magabrotheeeer/users-table/internal/theme"
	"github.com/magabrotheeeer/users-table/internal/usertable"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, table *usertable.Table, themes *theme.Controller, root *theme.Attribute, gatherer prometheus.Gatherer, limiter *rate.Limiter) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// HTML-страница и формы
	page.New(logger, table, themes, root).Routes(r)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}))

		r.Get("/health", health.New(logger, table).ServeHTTP)
		r.Get("/users", list.New(logger, table).ServeHTTP)
		r.Get("/theme", get.New(logger, themes).ServeHTTP)

		// Изменяющие запросы
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(limiter, logger))
			r.Post("/users/sort", sortby.New(logger, table).ServeHTTP)
			r.Put("/users/page", userspage.New(logger, table).ServeHTTP)
			r.Delete("/users/{id}", remove.New(logger, table).ServeHTTP)
			r.Post("/users/{id}/toggle", toggle.New(logger, table).ServeHTTP)
			r.Post("/users/reload", reload.New(logger, table).ServeHTTP)
			r.Post("/theme/toggle", themetoggle.New(logger, themes).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
