package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Book struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	ISBN        string          `json:"isbn"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	CoverImage  string          `json:"cover_image,omitempty"`
	CategoryIDs []int64         `json:"category_ids,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type CreateBookRequest struct {
	Title       string          `json:"title" validate:"required"`
	Author      string          `json:"author" validate:"required"`
	ISBN        string          `json:"isbn" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Description string          `json:"description,omitempty"`
	CoverImage  string          `json:"cover_image,omitempty"`
	CategoryIDs []int64         `json:"category_ids,omitempty"`
}

// BookSearchParams carries the optional search filters. Empty slices and nil
// bounds contribute nothing to the generated query.
type BookSearchParams struct {
	Titles   []string
	Authors  []string
	ISBNs    []string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

func (p BookSearchParams) IsZero() bool {
	return len(p.Titles) == 0 && len(p.Authors) == 0 && len(p.ISBNs) == 0 &&
		p.MinPrice == nil && p.MaxPrice == nil
}
