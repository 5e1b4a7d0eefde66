package calendar

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page описывает одну страницу элементов.
type Page[T any] struct {
	Items    []T // элементы на текущей странице
	Page     int // номер страницы (с 1)
	PageSize int // количество элементов на странице
	HasNext  bool
	HasPrev  bool
	Total    int64 // общее количество элементов
}

// Bounds переводит номер страницы и размер в limit/offset для запроса.
// page нумеруется с 1. При некорректных значениях используются дефолты.
func Bounds(page, pageSize int) (limit, offset, normPage int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page <= 0 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize, page
}

// NewPage собирает страницу из уже выбранных элементов и общего количества.
func NewPage[T any](items []T, total int64, page, pageSize int) Page[T] {
	limit, offset, page := Bounds(page, pageSize)
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:    items,
		Page:     page,
		PageSize: limit,
		HasPrev:  page > 1,
		HasNext:  int64(offset+len(items)) < total,
		Total:    total,
	}
}
