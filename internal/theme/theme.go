// Package theme управляет темой оформления: определяет начальное значение,
// переключает тему, сохраняет выбор в хранилище предпочтений и отражает
// текущее значение на корневом атрибуте страницы.
package theme

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/users-table/internal/events"
	"github.com/magabrotheeeer/users-table/internal/lib/sl"
	"github.com/magabrotheeeer/users-table/internal/models"
	"github.com/magabrotheeeer/users-table/internal/preference"
)

// DefaultKey ключ, под которым хранится выбранная тема.
const DefaultKey = "theme"

// RootAttribute получатель значения корневого атрибута темы ("dark" или "light").
type RootAttribute interface {
	SetTheme(t models.Theme)
}

// PlatformPreference сообщает, предпочитает ли платформа тёмную тему.
// Опрашивается только при инициализации.
type PlatformPreference func() bool

// Controller текущая тема и её сохранение.
type Controller struct {
	store     preference.Store
	key       string
	root      RootAttribute
	publisher events.Publisher
	log       *slog.Logger

	mu      sync.RWMutex
	current models.Theme
}

// New создаёт контроллер. Пока не вызван Init, текущая тема светлая.
func New(store preference.Store, key string, root RootAttribute, publisher events.Publisher, log *slog.Logger) *Controller {
	if key == "" {
		key = DefaultKey
	}
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Controller{
		store:     store,
		key:       key,
		root:      root,
		publisher: publisher,
		log:       log,
		current:   models.ThemeLight,
	}
}

// Init определяет начальную тему: сохранённое значение, затем предпочтение
// платформы, иначе светлая. Результат сохраняется и отражается на корневом атрибуте.
func (c *Controller) Init(ctx context.Context, platform PlatformPreference) (models.Theme, error) {
	const op = "theme.Init"

	stored, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	t, valid := models.ParseTheme(stored)
	switch {
	case ok && valid:
	case platform != nil && platform():
		t = models.ThemeDark
	default:
		t = models.ThemeLight
	}
	if ok && !valid {
		c.log.Warn("ignoring unknown stored theme", slog.String("key", c.key), slog.String("value", stored))
	}

	if err := c.apply(ctx, t); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	c.log.Info("theme initialized", slog.String("theme", string(t)))
	return t, nil
}

// Toggle переключает тему. Если сохранить значение не удалось,
// текущая тема не меняется.
func (c *Controller) Toggle(ctx context.Context) (models.Theme, error) {
	const op = "theme.Toggle"

	c.mu.Lock()
	next := c.current.Toggle()
	err := c.setLocked(ctx, next)
	c.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := c.publisher.Publish(context.WithoutCancel(ctx), events.Event{Type: events.ThemeChanged, Theme: string(next)}); err != nil {
		c.log.Warn("failed to publish theme change", sl.Err(err))
	}
	return next, nil
}

// Current возвращает текущую тему.
func (c *Controller) Current() models.Theme {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

func (c *Controller) apply(ctx context.Context, t models.Theme) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setLocked(ctx, t)
}

func (c *Controller) setLocked(ctx context.Context, t models.Theme) error {
	if err := c.store.Set(ctx, c.key, string(t)); err != nil {
		return err
	}
	c.current = t
	if c.root != nil {
		c.root.SetTheme(t)
	}
	return nil
}

// Attribute потокобезопасное значение корневого атрибута data-theme.
type Attribute struct {
	mu    sync.RWMutex
	theme models.Theme
}

func (a *Attribute) SetTheme(t models.Theme) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.theme = t
}

// Value возвращает значение атрибута; до первой установки "light".
func (a *Attribute) Value() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.theme == "" {
		return string(models.ThemeLight)
	}
	return string(a.theme)
}
