package usertable

import (
	"encoding/json"
	"strconv"

	"github.com/magabrotheeeer/users-table/internal/models"
)

// Ellipsis маркер пропущенных страниц в переключателе.
const Ellipsis = "..."

// PageItem элемент переключателя страниц: номер страницы или многоточие.
type PageItem struct {
	Page     int
	Ellipsis bool
}

func (p PageItem) String() string {
	if p.Ellipsis {
		return Ellipsis
	}
	return strconv.Itoa(p.Page)
}

// MarshalJSON кодирует страницу числом, а многоточие строкой "...".
func (p PageItem) MarshalJSON() ([]byte, error) {
	if p.Ellipsis {
		return json.Marshal(Ellipsis)
	}
	return json.Marshal(p.Page)
}

// TotalPages возвращает ceil(count / pageSize).
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// Window возвращает записи страницы page: [(page-1)*size, page*size).
// Для страницы за пределами коллекции результат пустой.
func Window(users []models.User, page, pageSize int) []models.User {
	if page < 1 || pageSize <= 0 {
		return []models.User{}
	}
	start := (page - 1) * pageSize
	if start >= len(users) {
		return []models.User{}
	}
	end := min(start+pageSize, len(users))
	out := make([]models.User, end-start)
	copy(out, users[start:end])
	return out
}

// Pages строит переключатель: первая и последняя страницы всегда видны,
// вокруг текущей показывается до двух соседних с каждой стороны,
// разрывы больше одной страницы заменяются многоточием.
func Pages(current, total int) []PageItem {
	start := max(1, current-2)
	end := min(total, current+2)

	pages := make([]PageItem, 0, max(0, end-start+1)+4)
	if start > 1 {
		pages = append(pages, PageItem{Page: 1})
	}
	if start > 2 {
		pages = append(pages, PageItem{Ellipsis: true})
	}
	for i := start; i <= end; i++ {
		pages = append(pages, PageItem{Page: i})
	}
	if end < total-1 {
		pages = append(pages, PageItem{Ellipsis: true})
	}
	if end < total {
		pages = append(pages, PageItem{Page: total})
	}
	return pages
}
