package page

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/users-table/internal/http/response"
	"github.com/magabrotheeeer/users-table/internal/lib/sl"
	"github.com/magabrotheeeer/users-table/internal/usertable"
)

// Request тело запроса смены страницы.
type Request struct {
	Page int `json:"page" validate:"required,min=1"`
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	SetPage(n int) error
	View() usertable.View
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.page"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request"))
		return
	}

	if err := h.service.SetPage(req.Page); err != nil {
		if errors.Is(err, usertable.ErrPageOutOfRange) {
			log.Info("page out of range", slog.Int("page", req.Page))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("page out of range"))
			return
		}
		log.Error("failed to set page", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to set page"))
		return
	}

	log.Info("page changed", slog.Int("page", req.Page))
	render.JSON(w, r, response.StatusOKWithData(h.service.View()))
}
