package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sportsbase/roster/pkg/pagination"
)

func TestNewPage(t *testing.T) {
	params := pagination.LimitOffsetParams{Limit: 2, Offset: 4}
	page := pagination.NewPage([]string{"a", "b"}, 9, params)
	assert.Equal(t, []string{"a", "b"}, page.Items)
	assert.Equal(t, int64(9), page.Total)
	assert.Equal(t, 2, page.Limit)
	assert.Equal(t, 4, page.Offset)
}

func TestNewPageNormalizesNilItems(t *testing.T) {
	page := pagination.NewPage[string](nil, 0, pagination.LimitOffsetParams{Limit: 50})
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}
