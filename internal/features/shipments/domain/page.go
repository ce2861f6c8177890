package domain

import "fmt"

// MaxPageSize caps how many shipments a single List call returns.
const MaxPageSize = 100

// PageParams selects one page of the newest-first shipment listing.
// Page is 1-indexed.
type PageParams struct {
	Page     int
	PageSize int
}

// NewPageParams validates page and size. Sizes above MaxPageSize are capped.
func NewPageParams(page, pageSize int) (PageParams, error) {
	if page < 1 {
		return PageParams{}, fmt.Errorf("%w: page must be >= 1", ErrValidation)
	}
	if pageSize < 1 {
		return PageParams{}, fmt.Errorf("%w: page_size must be >= 1", ErrValidation)
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return PageParams{Page: page, PageSize: pageSize}, nil
}

// Offset returns the zero-based index of the first item on the page.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page is one slice of the shipment listing plus the overall count.
type Page struct {
	Items    []Shipment `json:"items"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}
