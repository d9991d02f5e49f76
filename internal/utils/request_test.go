package utils_test

import (
	"net/http/httptest"
	"testing"

	appErrors "github.com/mkravchuk/bookshop-platform/internal/errors"
	"github.com/mkravchuk/bookshop-platform/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	t.Run("Success - Valid ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/books/42", nil)
		req.SetPathValue("id", "42")

		id, err := utils.ParseID(req, "id")

		assert.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("Failure - Non-Numeric", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/books/abc", nil)
		req.SetPathValue("id", "abc")

		id, err := utils.ParseID(req, "id")

		assert.Equal(t, int64(0), id)
		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
	})

	t.Run("Failure - Zero", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/books/0", nil)
		req.SetPathValue("id", "0")

		_, err := utils.ParseID(req, "id")

		assert.Error(t, err)
	})

	t.Run("Failure - Negative", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/books/-3", nil)
		req.SetPathValue("id", "-3")

		_, err := utils.ParseID(req, "id")

		assert.Error(t, err)
	})
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		wantPage     int
		wantPageSize int
	}{
		{"defaults when absent", "/books", 1, utils.DefaultPageSize},
		{"explicit values", "/books?page=3&pageSize=25", 3, 25},
		{"zero page falls back", "/books?page=0&pageSize=25", 1, 25},
		{"negative page falls back", "/books?page=-2", 1, utils.DefaultPageSize},
		{"non-numeric values fall back", "/books?page=abc&pageSize=xyz", 1, utils.DefaultPageSize},
		{"oversized pageSize falls back", "/books?pageSize=500", 1, utils.DefaultPageSize},
		{"max pageSize allowed", "/books?pageSize=100", 1, utils.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)

			page, pageSize := utils.ParsePagination(req)

			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
		})
	}
}
