package pagination

import "github.com/angelmondragon/partsdesk-backend/pkg/types"

const (
	// DefaultPageSize is the standard page size when one is not provided.
	DefaultPageSize = 15
	// MaxPageSize caps how many rows any page can hold.
	MaxPageSize = 100
)

// Meta describes a page. Index is zero-based.
type Meta struct {
	Index      int
	Size       int
	TotalItems int
	TotalPages int
}

// NormalizeSize enforces the default and maximum page sizes.
func NormalizeSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// TotalPages is ceil(total/size), never less than one.
func TotalPages(total, size int) int {
	size = NormalizeSize(size)
	if total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// ClampIndex returns index when it addresses an existing page and the first
// page otherwise.
func ClampIndex(index, total, size int) int {
	if index < 0 || index >= TotalPages(total, size) {
		return 0
	}
	return index
}

// Paginate slices items into the requested page. Out-of-range indexes fall
// back to the first page instead of failing.
func Paginate[T any](items []T, index, size int) ([]T, Meta) {
	size = NormalizeSize(size)
	total := len(items)
	index = ClampIndex(index, total, size)

	start := index * size
	end := start + size
	if end > total {
		end = total
	}

	page := make([]T, 0, end-start)
	page = append(page, items[start:end]...)

	return page, Meta{
		Index:      index,
		Size:       size,
		TotalItems: total,
		TotalPages: TotalPages(total, size),
	}
}

// HasPrev reports whether a previous page exists.
func (m Meta) HasPrev() bool {
	return m.Index > 0
}

// HasNext reports whether a next page exists.
func (m Meta) HasNext() bool {
	return m.Index < m.TotalPages-1
}

// Next returns the index of the following page, staying on the last one.
func (m Meta) Next() int {
	if m.HasNext() {
		return m.Index + 1
	}
	return m.Index
}

// Prev returns the index of the preceding page, staying on the first one.
func (m Meta) Prev() int {
	if m.HasPrev() {
		return m.Index - 1
	}
	return m.Index
}

// Last returns the index of the final page.
func (m Meta) Last() int {
	return m.TotalPages - 1
}

// ToPageMeta converts to the 1-based wire representation.
func (m Meta) ToPageMeta() types.PageMeta {
	return types.PageMeta{
		Page:       m.Index + 1,
		PageSize:   m.Size,
		TotalItems: m.TotalItems,
		TotalPages: m.TotalPages,
		HasPrev:    m.HasPrev(),
		HasNext:    m.HasNext(),
	}
}
