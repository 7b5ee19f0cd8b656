package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeOrderClause(t *testing.T) {
	allowed := map[string]string{
		"name":       "class_name",
		"created_at": "class_created_at",
	}

	p := Params{SortBy: "name", SortOrder: "asc"}
	clause, err := p.SafeOrderClause(allowed, "name")
	assert.NoError(t, err)
	assert.Equal(t, "ORDER BY class_name ASC", clause)

	// kolom di luar whitelist jatuh ke default
	p = Params{SortBy: "class_name; DROP TABLE classes", SortOrder: "desc"}
	clause, err = p.SafeOrderClause(allowed, "created_at")
	assert.NoError(t, err)
	assert.Equal(t, "ORDER BY class_created_at DESC", clause)

	_, err = Params{}.SafeOrderClause(map[string]string{}, "missing")
	assert.Error(t, err)
}

func TestParamsLimitOffset(t *testing.T) {
	p := Params{Page: 3, PerPage: 25}
	assert.Equal(t, 25, p.Limit())
	assert.Equal(t, 50, p.Offset())
}

func TestBuildMeta(t *testing.T) {
	meta := BuildMeta(101, Params{Page: 2, PerPage: 25})
	assert.Equal(t, 5, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
	if assert.NotNil(t, meta.NextPage) {
		assert.Equal(t, 3, *meta.NextPage)
	}
	if assert.NotNil(t, meta.PrevPage) {
		assert.Equal(t, 1, *meta.PrevPage)
	}

	empty := BuildMeta(0, Params{Page: 1, PerPage: 25})
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}
