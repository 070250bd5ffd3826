// Package source предоставляет источники данных для таблицы пользователей.
// Сейчас реализован только синтетический генератор: он имитирует асинхронную
// загрузку, выдерживая паузу перед тем как вернуть записи.
package source

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/magabrotheeeer/users-table/internal/models"
)

// Source загружает полный набор пользователей.
type Source interface {
	Load(ctx context.Context) ([]models.User, error)
}

const (
	DefaultCount      = 100
	DefaultMaxBalance = 5000.0
	DefaultDelay      = time.Second
)

// Synthetic генерирует Count пользователей после задержки Delay.
type Synthetic struct {
	Count      int
	MaxBalance float64
	Delay      time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// Option настраивает Synthetic.
type Option func(*Synthetic)

// WithRand задаёт генератор случайных чисел (для детерминированных тестов).
func WithRand(r *rand.Rand) Option {
	return func(s *Synthetic) { s.rnd = r }
}

// WithClock задаёт источник времени регистрации.
func WithClock(now func() time.Time) Option {
	return func(s *Synthetic) { s.now = now }
}

// NewSynthetic создаёт генератор. Неположительные значения заменяются значениями по умолчанию,
// кроме count == 0, который даёт пустую таблицу.
func NewSynthetic(count int, maxBalance float64, delay time.Duration, opts ...Option) *Synthetic {
	if count < 0 {
		count = DefaultCount
	}
	if maxBalance <= 0 {
		maxBalance = DefaultMaxBalance
	}
	if delay < 0 {
		delay = 0
	}
	s := &Synthetic{
		Count:      count,
		MaxBalance: maxBalance,
		Delay:      delay,
		rnd:        rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load ждёт Delay и возвращает сгенерированный набор.
// При отмене контекста записи не возвращаются.
func (s *Synthetic) Load(ctx context.Context) ([]models.User, error) {
	const op = "source.Synthetic.Load"

	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%s: %w", op, ctx.Err())
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.generate(), nil
}

func (s *Synthetic) generate() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	registeredAt := s.now()
	users := make([]models.User, 0, s.Count)
	for i := 1; i <= s.Count; i++ {
		n := strconv.Itoa(i)
		users = append(users, models.User{
			ID:         n,
			Name:       "User " + n,
			Balance:    s.rnd.Float64() * s.MaxBalance,
			Email:      "user" + n + "@example.com",
			RegisterAt: registeredAt,
			Active:     s.rnd.Float64() > 0.5,
		})
	}
	return users
}
