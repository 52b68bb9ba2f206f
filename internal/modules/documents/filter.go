package documents

import (
	"strings"
	"time"
	"unicode"

	"github.com/MuhamadAgungGumelar/compta-web/internal/core/backend"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const displayDateLayout = "02/01/2006"

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDate renders an API date as dd/mm/yyyy. Unparseable values are
// returned unchanged.
func FormatDate(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(displayDateLayout)
		}
	}
	return raw
}

// fold lowercases s and strips diacritics, so "Priorité" matches "priorite".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}

// Matches reports whether doc contains query in any searchable column.
func Matches(doc backend.Document, query string) bool {
	q := fold(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	for _, field := range []string{
		doc.Nature,
		doc.Designation,
		doc.Destinataire,
		FormatDate(doc.Date),
		doc.Priorite,
	} {
		if strings.Contains(fold(field), q) {
			return true
		}
	}
	return false
}

// Filter returns the documents matching query, in their original order.
func Filter(docs []backend.Document, query string) []backend.Document {
	out := make([]backend.Document, 0, len(docs))
	for _, d := range docs {
		if Matches(d, query) {
			out = append(out, d)
		}
	}
	return out
}

// Find returns the document with id.
func Find(docs []backend.Document, id string) (backend.Document, bool) {
	for _, d := range docs {
		if d.ID.String() == id {
			return d, true
		}
	}
	return backend.Document{}, false
}
