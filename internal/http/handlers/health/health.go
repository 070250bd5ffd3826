// Package health отвечает на проверку живости сервиса и сообщает состояние таблицы.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/users-table/internal/http/response"
	"github.com/magabrotheeeer/users-table/internal/usertable"
)

// Service источник состояния таблицы.
type Service interface {
	View() usertable.View
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	view := h.service.View()
	status := "ok"
	if view.Error != "" {
		status = "degraded"
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status":  status,
		"loading": view.Loading,
		"users":   view.Total,
	}))
}
