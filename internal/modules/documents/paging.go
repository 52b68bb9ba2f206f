package documents

import "github.com/MuhamadAgungGumelar/compta-web/internal/core/backend"

// Page is one page of a document list. Number is zero-based.
type Page struct {
	Items  []backend.Document
	Number int
	Count  int
	Total  int
}

// Paginate slices docs into pages of perPage and returns the requested one.
// Out-of-range page numbers clamp to the first or last page.
func Paginate(docs []backend.Document, number, perPage int) Page {
	if perPage <= 0 {
		perPage = 5
	}

	count := (len(docs) + perPage - 1) / perPage
	switch {
	case count == 0 || number < 0:
		number = 0
	case number >= count:
		number = count - 1
	}

	start := number * perPage
	end := start + perPage
	if end > len(docs) {
		end = len(docs)
	}

	items := make([]backend.Document, end-start)
	copy(items, docs[start:end])

	return Page{
		Items:  items,
		Number: number,
		Count:  count,
		Total:  len(docs),
	}
}

func (p Page) HasPrev() bool { return p.Number > 0 }
func (p Page) HasNext() bool { return p.Number+1 < p.Count }
