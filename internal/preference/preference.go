// Package preference предоставляет долговременное хранилище пользовательских
// предпочтений вида ключ-значение. Основная реализация работает поверх Redis,
// в памяти процесса хранится только при локальном запуске без Redis.
package preference

import "context"

// Store хранилище предпочтений.
type Store interface {
	// Get возвращает значение по ключу; ok == false, если ключ не задан.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set сохраняет значение без срока жизни.
	Set(ctx context.Context, key, value string) error
}
