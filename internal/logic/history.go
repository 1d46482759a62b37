package logic

// History records visited pages in order
type History struct {
	pages []string
}

// Push appends a page unless it is already the latest entry
func (h *History) Push(page string) {
	if n := len(h.pages); n > 0 && h.pages[n-1] == page {
		return
	}
	h.pages = append(h.pages, page)
}

// Pages returns a copy of the visited pages
func (h *History) Pages() []string {
	out := make([]string, len(h.pages))
	copy(out, h.pages)
	return out
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.pages)
}
