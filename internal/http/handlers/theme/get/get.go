package get

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/users-table/internal/http/response"
	"github.com/magabrotheeeer/users-table/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Current() models.Theme
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	current := h.service.Current()
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"theme":  current,
		"isDark": current.IsDark(),
	}))
}
