package dto

// Paginated is the envelope for paginated list responses.
// Pages are 1-indexed; limit is clamped to 1..100 at the handler layer.
type Paginated[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func NewPaginated[T any](items []T, total int64, page, limit int) *Paginated[T] {
	if items == nil {
		items = []T{}
	}
	return &Paginated[T]{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}
}
