package list

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/users-table/internal/http/response"
	"github.com/magabrotheeeer/users-table/internal/usertable"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	View() usertable.View
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	view := h.service.View()

	log.Debug("view rendered", slog.Int("page", view.Page), slog.Int("count", len(view.Users)), slog.Bool("loading", view.Loading))
	render.JSON(w, r, response.StatusOKWithData(view))
}
