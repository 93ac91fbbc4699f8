package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPaginateEmptyNeverFails(t *testing.T) {
	page, meta := Paginate([]int{}, 5, 10)
	assert.Empty(t, page)
	assert.Equal(t, 1, meta.TotalPages)
	assert.Equal(t, 0, meta.Index)
}

func TestPaginateBounds(t *testing.T) {
	items := seq(25)

	page, meta := Paginate(items, 0, 10)
	require.Len(t, page, 10)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 0, page[0])

	page, meta = Paginate(items, 2, 10)
	require.Len(t, page, 5)
	assert.Equal(t, 20, page[0])
	assert.False(t, meta.HasNext())
	assert.True(t, meta.HasPrev())

	page, meta = Paginate(items, 3, 10)
	require.Len(t, page, 10)
	assert.Equal(t, 0, meta.Index)
	assert.Equal(t, 0, page[0])

	_, meta = Paginate(items, -4, 10)
	assert.Equal(t, 0, meta.Index)
}

func TestPaginateCopiesPage(t *testing.T) {
	items := seq(3)
	page, _ := Paginate(items, 0, 10)
	page[0] = 99
	assert.Equal(t, 0, items[0])
}

func TestNormalizeSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, NormalizeSize(0))
	assert.Equal(t, DefaultPageSize, NormalizeSize(-3))
	assert.Equal(t, MaxPageSize, NormalizeSize(1000))
	assert.Equal(t, 7, NormalizeSize(7))
}

func TestMetaNavigation(t *testing.T) {
	_, meta := Paginate(seq(31), 1, 15)
	assert.Equal(t, 2, meta.Next())
	assert.Equal(t, 0, meta.Prev())
	assert.Equal(t, 2, meta.Last())

	wire := meta.ToPageMeta()
	assert.Equal(t, 2, wire.Page)
	assert.Equal(t, 3, wire.TotalPages)
	assert.Equal(t, 31, wire.TotalItems)
	assert.True(t, wire.HasNext)

	_, last := Paginate(seq(31), 2, 15)
	assert.Equal(t, 2, last.Next())
	_, first := Paginate(seq(31), 0, 15)
	assert.Equal(t, 0, first.Prev())
}
