// Package pagination carries the limit/offset page contract shared by all
// list operations.
package pagination

// LimitOffsetParams are the query parameters accepted by list endpoints.
// Malformed values are rejected at binding time, before any storage access.
type LimitOffsetParams struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// Page is a limit/offset page of items. Total is the size of the full
// filtered set, not the size of the slice.
type Page[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// NewPage builds a page around the given slice. A nil slice is normalized to
// an empty one so the JSON body always carries an array.
func NewPage[T any](items []T, total int64, params LimitOffsetParams) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:  items,
		Total:  total,
		Limit:  params.Limit,
		Offset: params.Offset,
	}
}
