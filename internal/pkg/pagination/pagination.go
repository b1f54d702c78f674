// Package pagination provides page/size pagination parameters for list endpoints.
package pagination

// Defaults and bounds for page-based pagination.
const (
	DefaultPage = 1
	DefaultSize = 20
	MaxSize     = 100
)

// Page holds normalized pagination parameters. Pages are 1-based.
type Page struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// New returns a Page with out-of-range values clamped to the defaults.
func New(page, size int) Page {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Page{Page: page, Size: size}
}

// Default returns the default pagination parameters.
func Default() Page {
	return Page{Page: DefaultPage, Size: DefaultSize}
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Size
}

// Limit returns the row limit for the page.
func (p Page) Limit() int {
	return p.Size
}
