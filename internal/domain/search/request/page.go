package request

import "fmt"

// Page is a validated 1-based page of fixed size.
type Page struct {
	number int
	size   int
}

// NewPage validates paging parameters. Zero values take the defaults
// (page 1, DefaultPageSize). Sizes above maxSize are rejected, not clamped.
func NewPage(number, size, maxSize int) (Page, error) {
	if maxSize <= 0 || maxSize > MaxPageSize {
		maxSize = MaxPageSize
	}
	if number == 0 {
		number = 1
	}
	if size == 0 {
		size = min(DefaultPageSize, maxSize)
	}
	if number < 1 {
		return Page{}, fmt.Errorf("page must be at least 1, got %d", number)
	}
	if size < 1 || size > maxSize {
		return Page{}, fmt.Errorf("page size must be between 1 and %d, got %d", maxSize, size)
	}
	return Page{number: number, size: size}, nil
}

// Number returns the 1-based page number.
func (p Page) Number() int { return p.number }

// Size returns the page size (top).
func (p Page) Size() int { return p.size }

// Skip returns the number of documents before this page.
func (p Page) Skip() int { return (p.number - 1) * p.size }
