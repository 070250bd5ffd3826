// Package models содержит доменные структуры таблицы пользователей:
// запись пользователя, поле и направление сортировки и тему оформления.
package models

import "time"

// User представляет одну запись таблицы пользователей.
// ID назначается последовательно при генерации и никогда не меняется.
type User struct {
	ID         string    `json:"id"`         // Уникальный идентификатор
	Name       string    `json:"name"`       // Отображаемое имя
	Balance    float64   `json:"balance"`    // Баланс, неотрицательный
	Email      string    `json:"email"`      // Электронная почта
	RegisterAt time.Time `json:"registerAt"` // Дата регистрации
	Active     bool      `json:"active"`     // Статус пользователя
}
