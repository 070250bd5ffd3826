package toggle

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/users-table/internal/http/response"
	"github.com/magabrotheeeer/users-table/internal/lib/sl"
	"github.com/magabrotheeeer/users-table/internal/usertable"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	ToggleStatus(ctx context.Context, id string) (bool, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.toggle"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	active, err := h.service.ToggleStatus(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usertable.ErrUserNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		case errors.Is(err, usertable.ErrLoading):
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("users are still loading"))
		default:
			log.Error("failed to toggle status", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to toggle status"))
		}
		return
	}

	log.Info("status toggled", slog.String("id", id), slog.Bool("active", active))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":     id,
		"active": active,
	}))
}
