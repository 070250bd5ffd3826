package toggle

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/users-table/internal/http/response"
	"github.com/magabrotheeeer/users-table/internal/lib/sl"
	"github.com/magabrotheeeer/users-table/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Toggle(ctx context.Context) (models.Theme, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.theme.toggle"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	next, err := h.service.Toggle(r.Context())
	if err != nil {
		log.Error("failed to toggle theme", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to save theme"))
		return
	}

	log.Info("theme toggled", slog.String("theme", string(next)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"theme":  next,
		"isDark": next.IsDark(),
	}))
}
