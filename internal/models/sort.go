package models

import "fmt"

// SortField поле, по которому сортируется таблица.
type SortField string

const (
	SortByName    SortField = "name"
	SortByBalance SortField = "balance"
)

// ParseSortField разбирает строковое значение поля сортировки.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(s); f {
	case SortByName, SortByBalance:
		return f, nil
	default:
		return "", fmt.Errorf("unknown sort field %q", s)
	}
}

// SortDirection направление сортировки.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// Toggle возвращает противоположное направление.
func (d SortDirection) Toggle() SortDirection {
	if d == Asc {
		return Desc
	}
	return Asc
}
