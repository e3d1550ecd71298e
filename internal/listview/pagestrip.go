package listview

import "strconv"

// Ellipsis is the gap marker in a pagination strip.
const Ellipsis = "…"

// PageStrip computes the pagination display strip: the current page with
// its immediate neighbors, plus the first and last page separated by an
// ellipsis whenever they are not adjacent to the shown window.
func PageStrip(page, totalPages int) []string {
	if totalPages <= 0 {
		return nil
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	var strip []string
	add := func(n int) { strip = append(strip, strconv.Itoa(n)) }

	lo := page - 1
	if lo < 1 {
		lo = 1
	}
	hi := page + 1
	if hi > totalPages {
		hi = totalPages
	}

	if lo > 1 {
		add(1)
		if lo > 2 {
			strip = append(strip, Ellipsis)
		}
	}
	for n := lo; n <= hi; n++ {
		add(n)
	}
	if hi < totalPages {
		if hi < totalPages-1 {
			strip = append(strip, Ellipsis)
		}
		add(totalPages)
	}
	return strip
}
