// Package events описывает события изменения таблицы пользователей
// и их публикацию во внешнюю шину (RabbitMQ). Публикация необязательна:
// без настроенного брокера используется Noop.
package events

import (
	"context"
	"time"
)

// Type тип события, он же routing key при публикации.
type Type string

const (
	TableLoaded   Type = "table.loaded"
	TableSorted   Type = "table.sorted"
	UserDeleted   Type = "user.deleted"
	StatusToggled Type = "user.status_toggled"
	ThemeChanged  Type = "theme.changed"
)

// Event одно изменение состояния таблицы или темы.
type Event struct {
	Type          Type      `json:"type"`
	MountID       string    `json:"mountId,omitempty"`
	UserID        string    `json:"userId,omitempty"`
	Active        *bool     `json:"active,omitempty"`
	SortField     string    `json:"sortField,omitempty"`
	SortDirection string    `json:"sortDirection,omitempty"`
	Theme         string    `json:"theme,omitempty"`
	Count         int       `json:"count,omitempty"`
	At            time.Time `json:"at"`
}

// Publisher отправляет события. Ошибки публикации не должны ломать операции таблицы,
// вызывающая сторона только логирует их.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Noop ничего не публикует.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
