package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Params is a 1-indexed page request.
type Params struct {
	Page     int
	PageSize int
}

// New normalizes page and pageSize: values below 1 fall back to the
// defaults and pageSize is capped at MaxPageSize.
func New(page, pageSize int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Params{Page: page, PageSize: pageSize}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ParseFromRequest handles pagination parameters from Fiber context.
// page_size is preferred; limit is accepted for older clients.
func ParseFromRequest(c *fiber.Ctx) Params {
	page, _ := strconv.Atoi(c.Query("page", strconv.Itoa(DefaultPage)))
	size := c.Query("page_size")
	if size == "" {
		size = c.Query("limit", strconv.Itoa(DefaultPageSize))
	}
	pageSize, _ := strconv.Atoi(size)
	return New(page, pageSize)
}

// Page is the standard paginated response body.
type Page[T any] struct {
	Data     []T   `json:"data"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

// Empty returns a page without rows. Data is never nil so it encodes as [].
func Empty[T any](p Params, total int64) Page[T] {
	return Page[T]{Data: []T{}, Total: total, Page: p.Page, PageSize: p.PageSize}
}

// OutOfRange reports whether the page starts past the last row, in which
// case no range query is needed.
func (p Params) OutOfRange(total int64) bool {
	return total == 0 || int64(p.Offset()) >= total
}

// Of builds a page from rows, normalizing nil to empty.
func Of[T any](p Params, total int64, rows []T) Page[T] {
	if rows == nil {
		rows = []T{}
	}
	return Page[T]{Data: rows, Total: total, Page: p.Page, PageSize: p.PageSize}
}

// Fetch counts first and runs list only when the page has rows.
func Fetch[T any](p Params, count func() (int64, error), list func(offset, limit int) ([]T, error)) (Page[T], error) {
	total, err := count()
	if err != nil {
		return Page[T]{}, err
	}
	if p.OutOfRange(total) {
		return Empty[T](p, total), nil
	}
	rows, err := list(p.Offset(), p.PageSize)
	if err != nil {
		return Page[T]{}, err
	}
	return Of(p, total, rows), nil
}
