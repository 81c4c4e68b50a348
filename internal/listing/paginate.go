package listing

// DefaultPageSize applies when the caller asks for a non-positive page size.
const DefaultPageSize = 20

const pageWindow = 5

// PageMeta describes the position of a page within the full result set.
// Start and End are 1-based item positions; Start is 0 for an empty page.
type PageMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int   `json:"total"`
	TotalPages int   `json:"total_pages"`
	Start      int   `json:"start"`
	End        int   `json:"end"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
	Window     []int `json:"window"`
}

// Page is a slice of a result set plus its metadata.
type Page[T any] struct {
	Items []T      `json:"items"`
	Meta  PageMeta `json:"meta"`
}

// Paginate cuts items into the requested page. Pages past the end are empty.
func Paginate[T any](items []T, page, size int) Page[T] {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}

	total := len(items)
	totalPages := total / size
	if total%size != 0 {
		totalPages++
	}

	start := total
	if page <= totalPages {
		start = (page - 1) * size
	}
	end := total
	if total-start > size {
		end = start + size
	}

	meta := PageMeta{
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: totalPages,
		End:        end,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
		Window:     PageWindow(page, totalPages),
	}
	if end > start {
		meta.Start = start + 1
	}

	return Page[T]{Items: items[start:end:end], Meta: meta}
}

// PageWindow returns at most five page numbers around current, pinned to the
// first or last pages near the edges.
func PageWindow(current, totalPages int) []int {
	if totalPages < 1 {
		return []int{}
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	first, last := 1, totalPages
	half := pageWindow / 2
	if totalPages > pageWindow {
		switch {
		case current <= half+1:
			last = pageWindow
		case current >= totalPages-half:
			first = totalPages - pageWindow + 1
		default:
			first, last = current-half, current+half
		}
	}

	window := make([]int, 0, last-first+1)
	for p := first; p <= last; p++ {
		window = append(window, p)
	}
	return window
}
