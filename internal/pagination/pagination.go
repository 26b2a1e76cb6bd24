// Package pagination slices lists into pages and computes the compressed
// page-number window shown under a list.
package pagination

import "strconv"

// PageLink is one entry of the page window: a page number or an ellipsis.
type PageLink struct {
	Number   int
	Ellipsis bool
}

// String renders the link as its number or "...".
func (l PageLink) String() string {
	if l.Ellipsis {
		return "..."
	}
	return strconv.Itoa(l.Number)
}

// Page is one page of items.
type Page[T any] struct {
	Items       []T
	TotalPages  int
	CurrentPage int
	Window      []PageLink
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool { return p.CurrentPage > 1 }

// HasNext reports whether a next page exists.
func (p Page[T]) HasNext() bool { return p.CurrentPage < p.TotalPages }

// TotalPages returns ceil(n / pageSize). A non-positive pageSize counts as 1.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 {
		pageSize = 1
	}
	if n <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// ResetIfOutOfRange returns 1 when current lies past a non-empty page range,
// and current otherwise. Values below 1 are raised to 1.
func ResetIfOutOfRange(current, totalPages int) int {
	if current < 1 {
		return 1
	}
	if totalPages > 0 && current > totalPages {
		return 1
	}
	return current
}

// Paginate returns the requested page of items after applying
// ResetIfOutOfRange. Items is a sub-slice of the input.
func Paginate[T any](items []T, pageSize, currentPage int) Page[T] {
	if pageSize <= 0 {
		pageSize = 1
	}
	total := TotalPages(len(items), pageSize)
	current := ResetIfOutOfRange(currentPage, total)

	start := (current - 1) * pageSize
	if start > len(items) {
		start = len(items)
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:       items[start:end],
		TotalPages:  total,
		CurrentPage: current,
		Window:      Window(current, total),
	}
}

// Window computes the page links. Up to seven pages are all listed. Beyond
// that the first and last pages are always shown: near the start pages 1-5,
// near the end the last five, otherwise the current page and its neighbours,
// with ellipses marking the gaps.
func Window(current, totalPages int) []PageLink {
	if totalPages <= 0 {
		return []PageLink{}
	}
	if totalPages <= 7 {
		return numbers(1, totalPages)
	}

	gap := PageLink{Ellipsis: true}
	switch {
	case current <= 4:
		return append(numbers(1, 5), gap, PageLink{Number: totalPages})
	case current > totalPages-4:
		return append([]PageLink{{Number: 1}, gap}, numbers(totalPages-4, totalPages)...)
	default:
		out := []PageLink{{Number: 1}, gap}
		out = append(out, numbers(current-1, current+1)...)
		return append(out, gap, PageLink{Number: totalPages})
	}
}

func numbers(from, to int) []PageLink {
	out := make([]PageLink, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, PageLink{Number: n})
	}
	return out
}
