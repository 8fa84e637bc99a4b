// Package pagination pages through stored rows with OFFSET/LIMIT.
package pagination

import (
	"context"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest is a 1-based page of PageSize rows.
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Defaults fills in a missing page or size and caps the size at MaxPageSize.
func (p *PageRequest) Defaults() {
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.PageSize < 1:
		p.PageSize = DefaultPageSize
	case p.PageSize > MaxPageSize:
		p.PageSize = MaxPageSize
	}
}

// Offset is the number of rows before this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageResponse is one page of rows plus totals.
type PageResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewPageResponse builds a PageResponse. Data is never nil.
func NewPageResponse[T any](data []T, page, pageSize int, totalItems int64) PageResponse[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	}
	return PageResponse[T]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// HasNext reports whether a later page holds rows.
func (r *PageResponse[T]) HasNext() bool {
	return len(r.Data) > 0 && r.Page < r.TotalPages
}

// Paginate is a gorm scope applying the page's OFFSET and LIMIT.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}

// Fetcher loads one page.
type Fetcher[T any] func(ctx context.Context, page PageRequest) (*PageResponse[T], error)

// Collect walks every page from the first and returns all rows in order.
func Collect[T any](ctx context.Context, pageSize int, fetch Fetcher[T]) ([]T, error) {
	page := PageRequest{Page: 1, PageSize: pageSize}
	page.Defaults()

	var out []T
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		resp, err := fetch(ctx, page)
		if err != nil {
			return nil, err
		}
		out = append(out, resp.Data...)
		if !resp.HasNext() {
			return out, nil
		}
		page.Page++
	}
}
