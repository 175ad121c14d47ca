package queryparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_Defaults(t *testing.T) {
	p := ListParams{Page: 0, PerPage: -5, SortBy: "", OrderBy: "yukari"}
	p.Validate()

	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)
	assert.Equal(t, DefaultSortBy, p.SortBy)
	assert.Equal(t, DefaultOrderBy, p.OrderBy)
}

func TestValidate_ClampsPerPage(t *testing.T) {
	p := ListParams{Page: 2, PerPage: 500, SortBy: "name", OrderBy: "asc"}
	p.Validate()

	assert.Equal(t, 2, p.Page)
	assert.Equal(t, MaxPerPage, p.PerPage)
	assert.Equal(t, "name", p.SortBy)
	assert.Equal(t, "asc", p.OrderBy)
}

func TestCalculateOffset(t *testing.T) {
	p := ListParams{Page: 3, PerPage: 20}
	assert.Equal(t, 40, p.CalculateOffset())

	p = ListParams{Page: 1, PerPage: 20}
	assert.Equal(t, 0, p.CalculateOffset())
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 20))
	assert.Equal(t, 1, CalculateTotalPages(20, 20))
	assert.Equal(t, 2, CalculateTotalPages(21, 20))
	assert.Equal(t, 5, CalculateTotalPages(99, 20))
	assert.Equal(t, 0, CalculateTotalPages(10, 0))
}

func TestNewPaginatedResult(t *testing.T) {
	data := []string{"a", "b"}
	result := NewPaginatedResult(data, 42, ListParams{Page: 2, PerPage: 10})

	assert.Equal(t, data, result.Data)
	assert.Equal(t, 2, result.Meta.CurrentPage)
	assert.Equal(t, 10, result.Meta.PerPage)
	assert.EqualValues(t, 42, result.Meta.TotalItems)
	assert.Equal(t, 5, result.Meta.TotalPages)
}

func TestDefaultListParams(t *testing.T) {
	p := DefaultListParams("")
	assert.Equal(t, DefaultSortBy, p.SortBy)

	p = DefaultListParams("title")
	assert.Equal(t, "title", p.SortBy)
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)
	assert.Equal(t, DefaultOrderBy, p.OrderBy)
}
