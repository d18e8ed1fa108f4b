// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/manabase/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		query  string
		page   int
		limit  int
		offset int
	}{
		{"", pagination.DefaultPage, pagination.DefaultLimit, 0},
		{"?page=3&limit=10", 3, 10, 20},
		{"?page=0&limit=1000", pagination.DefaultPage, pagination.DefaultLimit, 0},
		{"?page=abc&limit=-5", pagination.DefaultPage, pagination.DefaultLimit, 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			params := pagination.FromRequest(httptest.NewRequest("GET", "/cards"+tt.query, nil))

			assert.Equal(t, tt.page, params.Page)
			assert.Equal(t, tt.limit, params.Limit)
			assert.Equal(t, tt.offset, params.Offset())
		})
	}
}

func TestNewMeta(t *testing.T) {
	assert.Equal(t, 3, pagination.NewMeta(1, 20, 41).TotalPages)
	assert.Equal(t, 0, pagination.NewMeta(1, 20, 0).TotalPages)
	assert.Equal(t, 0, pagination.NewMeta(1, 0, 10).TotalPages)
}
