// Package usertable реализует состояние представления таблицы пользователей:
// загрузку набора записей, сортировку, постраничный вывод и действия над строками.
//
// Все операции сериализуются мьютексом, поэтому Table можно использовать
// из параллельных HTTP-обработчиков. Загрузка выполняется в отдельной горутине
// и отменяется при повторном монтировании или закрытии таблицы.
package usertable

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/magabrotheeeer/users-table/internal/events"
	"github.com/magabrotheeeer/users-table/internal/lib/sl"
	"github.com/magabrotheeeer/users-table/internal/models"
	"github.com/magabrotheeeer/users-table/internal/usertable/source"
)

// DefaultPageSize количество записей на странице.
const DefaultPageSize = 10

// Recorder получает сведения о выполненных операциях (метрики).
type Recorder interface {
	Operation(op string, err error)
	Load(d time.Duration, err error)
	Users(n int)
}

type noopRecorder struct{}

func (noopRecorder) Operation(string, error)   {}
func (noopRecorder) Load(time.Duration, error) {}
func (noopRecorder) Users(int)                 {}

// View снимок состояния таблицы для отображения.
type View struct {
	Users         []models.User        `json:"users"`
	Total         int                  `json:"total"`
	Page          int                  `json:"page"`
	TotalPages    int                  `json:"totalPages"`
	PageSize      int                  `json:"pageSize"`
	Pages         []PageItem           `json:"pages"`
	SortField     models.SortField     `json:"sortField"`
	SortDirection models.SortDirection `json:"sortDirection"`
	Loading       bool                 `json:"loading"`
	Error         string               `json:"error,omitempty"`
	MountID       string               `json:"mountId"`
}

// Table состояние таблицы пользователей.
type Table struct {
	src         source.Source
	log         *slog.Logger
	publisher   events.Publisher
	recorder    Recorder
	pageSize    int
	loadTimeout time.Duration
	now         func() time.Time

	mu        sync.Mutex
	collator  *collate.Collator
	users     []models.User
	loading   bool
	loadErr   error
	sortField models.SortField
	sortDir   models.SortDirection
	page      int
	mountID   string
	cancel    context.CancelFunc
	closed    bool
	wg        sync.WaitGroup
}

// Option настраивает Table.
type Option func(*Table)

// WithPageSize задаёт размер страницы.
func WithPageSize(size int) Option {
	return func(t *Table) {
		if size > 0 {
			t.pageSize = size
		}
	}
}

// WithLoadTimeout ограничивает время загрузки. Ноль отключает ограничение.
func WithLoadTimeout(d time.Duration) Option {
	return func(t *Table) { t.loadTimeout = d }
}

// WithPublisher задаёт публикатор событий.
func WithPublisher(p events.Publisher) Option {
	return func(t *Table) { t.publisher = p }
}

// WithRecorder задаёт получателя метрик.
func WithRecorder(r Recorder) Option {
	return func(t *Table) { t.recorder = r }
}

// New создаёт таблицу. До вызова Mount таблица пуста и не находится в состоянии загрузки.
func New(src source.Source, log *slog.Logger, opts ...Option) *Table {
	t := &Table{
		src:       src,
		log:       log,
		publisher: events.Noop{},
		recorder:  noopRecorder{},
		pageSize:  DefaultPageSize,
		now:       time.Now,
		collator:  collate.New(language.English),
		users:     []models.User{},
		sortField: models.SortByName,
		sortDir:   models.Asc,
		page:      1,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Mount сбрасывает состояние и запускает загрузку нового набора записей.
// Загрузка привязана к ctx; незавершённая загрузка предыдущего монтирования отменяется.
// Загруженные записи упорядочиваются по текущим полю и направлению сортировки,
// в том числе выбранным во время загрузки.
// Возвращает идентификатор монтирования.
func (t *Table) Mount(ctx context.Context) (string, error) {
	const op = "usertable.Mount"

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return "", fmt.Errorf("%s: %w", op, ErrClosed)
	}
	if t.cancel != nil {
		t.cancel()
	}

	loadCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.mountID = uuid.NewString()
	t.users = []models.User{}
	t.loading = true
	t.loadErr = nil
	t.page = 1
	t.sortField = models.SortByName
	t.sortDir = models.Asc
	t.recorder.Users(0)

	t.wg.Add(1)
	go t.load(loadCtx, t.mountID)

	t.log.Info("table mounted", slog.String("mount_id", t.mountID))
	return t.mountID, nil
}

func (t *Table) load(ctx context.Context, mountID string) {
	const op = "usertable.load"
	defer t.wg.Done()

	if t.loadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.loadTimeout)
		defer cancel()
	}

	start := t.now()
	users, err := t.src.Load(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%w after %s", ErrLoadTimeout, t.loadTimeout)
	}

	t.mu.Lock()
	if t.closed || t.mountID != mountID {
		t.mu.Unlock()
		t.log.Debug("discarding stale load", slog.String("mount_id", mountID))
		return
	}
	if errors.Is(err, context.Canceled) {
		t.mu.Unlock()
		t.log.Debug("load cancelled", slog.String("mount_id", mountID))
		return
	}

	t.loading = false
	t.recorder.Load(t.now().Sub(start), err)
	if err != nil {
		t.loadErr = err
		t.mu.Unlock()
		t.log.Error("failed to load users", sl.Op(op), sl.Err(err))
		return
	}
	slices.SortStableFunc(users, t.comparator(t.sortField, t.sortDir))
	t.users = users
	t.recorder.Users(len(users))
	t.mu.Unlock()

	t.log.Info("users loaded", slog.String("mount_id", mountID), slog.Int("count", len(users)))
	t.publish(ctx, events.Event{Type: events.TableLoaded, MountID: mountID, Count: len(users)})
}

// Close отменяет незавершённую загрузку и дожидается её горутины.
// После Close повторное монтирование невозможно.
func (t *Table) Close() {
	t.mu.Lock()
	t.closed = true
	if t.cancel != nil {
		t.cancel()
	}
	t.mu.Unlock()

	t.wg.Wait()
}

// Wait блокируется до завершения текущей загрузки.
func (t *Table) Wait() {
	t.wg.Wait()
}

// Sort сортирует всю коллекцию. Повторный запрос того же поля меняет направление,
// новое поле сортируется по возрастанию. Порядок всегда соответствует
// направлению, которое будет показано после операции.
func (t *Table) Sort(ctx context.Context, field models.SortField) (models.SortDirection, error) {
	const op = "usertable.Sort"

	if field != models.SortByName && field != models.SortByBalance {
		err := fmt.Errorf("%s: %w: %q", op, ErrUnknownSortField, field)
		t.recorder.Operation("sort", err)
		return "", err
	}

	t.mu.Lock()
	if t.sortField == field {
		t.sortDir = t.sortDir.Toggle()
	} else {
		t.sortField = field
		t.sortDir = models.Asc
	}
	dir := t.sortDir
	slices.SortStableFunc(t.users, t.comparator(field, dir))
	mountID := t.mountID
	t.mu.Unlock()

	t.recorder.Operation("sort", nil)
	t.publish(ctx, events.Event{
		Type:          events.TableSorted,
		MountID:       mountID,
		SortField:     string(field),
		SortDirection: string(dir),
	})
	return dir, nil
}

func (t *Table) comparator(field models.SortField, dir models.SortDirection) func(a, b models.User) int {
	sign := 1
	if dir == models.Desc {
		sign = -1
	}
	if field == models.SortByBalance {
		return func(a, b models.User) int {
			return sign * cmp.Compare(a.Balance, b.Balance)
		}
	}
	return func(a, b models.User) int {
		return sign * t.collator.CompareString(a.Name, b.Name)
	}
}

// Delete удаляет запись с указанным id. Текущая страница ограничивается
// новым количеством страниц.
func (t *Table) Delete(ctx context.Context, id string) error {
	const op = "usertable.Delete"

	t.mu.Lock()
	if t.loading {
		t.mu.Unlock()
		err := fmt.Errorf("%s: %w", op, ErrLoading)
		t.recorder.Operation("delete", err)
		return err
	}
	idx := t.indexOf(id)
	if idx < 0 {
		t.mu.Unlock()
		err := fmt.Errorf("%s: %w: %s", op, ErrUserNotFound, id)
		t.recorder.Operation("delete", err)
		return err
	}
	t.users = slices.Delete(t.users, idx, idx+1)
	t.page = min(t.page, max(1, TotalPages(len(t.users), t.pageSize)))
	count := len(t.users)
	mountID := t.mountID
	t.mu.Unlock()

	t.recorder.Operation("delete", nil)
	t.recorder.Users(count)
	t.publish(ctx, events.Event{Type: events.UserDeleted, MountID: mountID, UserID: id, Count: count})
	return nil
}

// ToggleStatus меняет флаг active у записи с указанным id, порядок не меняется.
// Возвращает новое значение флага.
func (t *Table) ToggleStatus(ctx context.Context, id string) (bool, error) {
	const op = "usertable.ToggleStatus"

	t.mu.Lock()
	if t.loading {
		t.mu.Unlock()
		err := fmt.Errorf("%s: %w", op, ErrLoading)
		t.recorder.Operation("toggle_status", err)
		return false, err
	}
	idx := t.indexOf(id)
	if idx < 0 {
		t.mu.Unlock()
		err := fmt.Errorf("%s: %w: %s", op, ErrUserNotFound, id)
		t.recorder.Operation("toggle_status", err)
		return false, err
	}
	t.users[idx].Active = !t.users[idx].Active
	active := t.users[idx].Active
	mountID := t.mountID
	t.mu.Unlock()

	t.recorder.Operation("toggle_status", nil)
	t.publish(ctx, events.Event{Type: events.StatusToggled, MountID: mountID, UserID: id, Active: &active})
	return active, nil
}

// SetPage делает текущей страницу n. Допустимы значения от 1 до max(1, TotalPages).
func (t *Table) SetPage(n int) error {
	const op = "usertable.SetPage"

	t.mu.Lock()
	defer t.mu.Unlock()

	last := max(1, TotalPages(len(t.users), t.pageSize))
	if n < 1 || n > last {
		err := fmt.Errorf("%s: %w: %d not in [1, %d]", op, ErrPageOutOfRange, n, last)
		t.recorder.Operation("set_page", err)
		return err
	}
	t.page = n
	t.recorder.Operation("set_page", nil)
	return nil
}

// View возвращает снимок текущего состояния.
func (t *Table) View() View {
	t.mu.Lock()
	defer t.mu.Unlock()

	totalPages := TotalPages(len(t.users), t.pageSize)
	v := View{
		Users:         Window(t.users, t.page, t.pageSize),
		Total:         len(t.users),
		Page:          t.page,
		TotalPages:    totalPages,
		PageSize:      t.pageSize,
		Pages:         Pages(t.page, totalPages),
		SortField:     t.sortField,
		SortDirection: t.sortDir,
		Loading:       t.loading,
		MountID:       t.mountID,
	}
	if t.loadErr != nil {
		v.Error = t.loadErr.Error()
	}
	return v
}

// Users возвращает копию всей коллекции в текущем порядке.
func (t *Table) Users() []models.User {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.users)
}

func (t *Table) indexOf(id string) int {
	return slices.IndexFunc(t.users, func(u models.User) bool { return u.ID == id })
}

func (t *Table) publish(ctx context.Context, e events.Event) {
	e.At = t.now()
	if err := t.publisher.Publish(context.WithoutCancel(ctx), e); err != nil {
		t.log.Warn("failed to publish event", slog.String("type", string(e.Type)), sl.Err(err))
	}
}
