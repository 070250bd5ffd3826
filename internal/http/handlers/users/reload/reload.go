package reload

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/users-table/internal/http/response"
	"github.com/magabrotheeeer/users-table/internal/lib/sl"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service перезапускает загрузку. Контекст загрузки не должен зависеть от запроса.
type Service interface {
	Mount(ctx context.Context) (string, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.reload"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	mountID, err := h.service.Mount(context.WithoutCancel(r.Context()))
	if err != nil {
		log.Error("failed to reload users", sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("failed to reload users"))
		return
	}

	log.Info("reload started", slog.String("mount_id", mountID))
	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"mountId": mountID,
		"loading": true,
	}))
}
