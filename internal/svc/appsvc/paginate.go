package appsvc

import "fmt"

// PageSize is the fixed number of rows per page.
const PageSize = 10

// Page is one slice of the filtered and sorted records.
// From and To are 1-based positions of the first and last item, zero when empty.
type Page struct {
	Items      []App
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
	From       int
	To         int
	HasPrev    bool
	HasNext    bool
}

// Caption is the pagination summary shown under the table.
func (p Page) Caption() string {
	return fmt.Sprintf("Showing %d to %d of %d", p.From, p.To, p.TotalItems)
}

// Paginate slices apps into the requested page. page is clamped to [1, TotalPages],
// size <= 0 falls back to PageSize.
func Paginate(apps []App, page, size int) Page {
	if size <= 0 {
		size = PageSize
	}

	total := len(apps)
	totalPages := (total + size - 1) / size

	if page > totalPages {
		page = totalPages
	}

	if page < 1 {
		page = 1
	}

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}

	if end > total {
		end = total
	}

	items := make([]App, end-start)
	copy(items, apps[start:end])

	out := Page{
		Items:      items,
		Page:       page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}

	if len(items) > 0 {
		out.From = start + 1
		out.To = end
	}

	return out
}
