// Package page отрисовывает таблицу пользователей в HTML и обрабатывает
// формы со страницы (сортировка, страницы, действия над строками, тема).
// Каждая форма после выполнения перенаправляет обратно на "/".
package page

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/users-table/internal/lib/money"
	"github.com/magabrotheeeer/users-table/internal/lib/sl"
	"github.com/magabrotheeeer/users-table/internal/models"
	"github.com/magabrotheeeer/users-table/internal/usertable"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

var funcs = template.FuncMap{
	"balance":   money.Format,
	"isoDate":   func(t time.Time) string { return t.UTC().Format(time.DateOnly) },
	"isoTime":   func(t time.Time) string { return t.UTC().Format("2006-01-02T15:04:05.000Z") },
	"isSorted":  func(v usertable.View, field string) bool { return string(v.SortField) == field },
	"indicator": indicator,
}

var tmpl = template.Must(template.New("table.html").Funcs(funcs).ParseFS(templatesFS, "templates/table.html"))

// Table операции таблицы, доступные со страницы.
type Table interface {
	View() usertable.View
	Sort(ctx context.Context, field models.SortField) (models.SortDirection, error)
	SetPage(n int) error
	Delete(ctx context.Context, id string) error
	ToggleStatus(ctx context.Context, id string) (bool, error)
}

// Theme текущая тема и её переключение.
type Theme interface {
	Toggle(ctx context.Context) (models.Theme, error)
}

// RootAttribute значение атрибута data-theme корневого элемента.
type RootAttribute interface {
	Value() string
}

type data struct {
	Theme  string
	IsDark bool
	View   usertable.View
}

type Handler struct {
	log   *slog.Logger
	table Table
	theme Theme
	root  RootAttribute
}

func New(log *slog.Logger, table Table, theme Theme, root RootAttribute) *Handler {
	return &Handler{
		log:   log,
		table: table,
		theme: theme,
		root:  root,
	}
}

// Static отдаёт стили страницы.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// Routes регистрирует страницу и обработчики форм.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Render)
	r.Handle("/static/*", Static())
	r.Route("/actions", func(r chi.Router) {
		r.Post("/sort", h.Sort)
		r.Post("/page", h.Page)
		r.Post("/theme", h.ToggleTheme)
		r.Post("/users/{id}/delete", h.Delete)
		r.Post("/users/{id}/toggle", h.ToggleStatus)
	})
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// Render отрисовывает текущее состояние таблицы.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.page.Render"
	log := h.logger(r, op)

	theme := h.root.Value()
	d := data{
		Theme:  theme,
		IsDark: theme == string(models.ThemeDark),
		View:   h.table.View(),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, d); err != nil {
		log.Error("failed to render page", sl.Err(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *Handler) Sort(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.page.Sort"
	log := h.logger(r, op)

	field, err := models.ParseSortField(r.FormValue("field"))
	if err != nil {
		log.Info("invalid sort field", sl.Err(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := h.table.Sort(r.Context(), field); err != nil {
		h.fail(w, log, err)
		return
	}
	back(w, r)
}

func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.page.Page"
	log := h.logger(r, op)

	n, err := strconv.Atoi(r.FormValue("page"))
	if err != nil {
		log.Info("invalid page", sl.Err(err))
		http.Error(w, "invalid page", http.StatusBadRequest)
		return
	}
	if err := h.table.SetPage(n); err != nil {
		h.fail(w, log, err)
		return
	}
	back(w, r)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.page.Delete"
	log := h.logger(r, op)

	if err := h.table.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, log, err)
		return
	}
	back(w, r)
}

func (h *Handler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.page.ToggleStatus"
	log := h.logger(r, op)

	if _, err := h.table.ToggleStatus(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, log, err)
		return
	}
	back(w, r)
}

func (h *Handler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.page.ToggleTheme"
	log := h.logger(r, op)

	if _, err := h.theme.Toggle(r.Context()); err != nil {
		h.fail(w, log, err)
		return
	}
	back(w, r)
}

func (h *Handler) fail(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, usertable.ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.Is(err, usertable.ErrPageOutOfRange):
		http.Error(w, "page out of range", http.StatusBadRequest)
	case errors.Is(err, usertable.ErrLoading):
		http.Error(w, "users are still loading", http.StatusConflict)
	default:
		log.Error("action failed", sl.Err(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func back(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func indicator(v usertable.View, field string) string {
	if string(v.SortField) != field {
		return "↕"
	}
	if v.SortDirection == models.Asc {
		return "↑"
	}
	return "↓"
}
