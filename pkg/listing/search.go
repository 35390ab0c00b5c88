package listing

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-gallery/pkg/model"
)

// DefaultPageSize is the number of rows per page.
const DefaultPageSize = 3

// Filter returns the records matching term, in their original order. A
// record matches when its id, title, description, or status label contains
// the term case-insensitively. An empty term matches every record.
func Filter(records []model.Record, term string) []model.Record {
	out := make([]model.Record, 0, len(records))
	q := strings.ToLower(term)
	for _, record := range records {
		if Matches(record, q) {
			out = append(out, record)
		}
	}
	return out
}

// Matches reports whether record matches an already lower-cased term.
func Matches(record model.Record, lowerTerm string) bool {
	if lowerTerm == "" {
		return true
	}
	switch {
	case strings.Contains(strconv.FormatInt(record.ID, 10), lowerTerm):
		return true
	case strings.Contains(strings.ToLower(record.Title), lowerTerm):
		return true
	case strings.Contains(strings.ToLower(record.Description), lowerTerm):
		return true
	case strings.Contains(record.Status.Label(), lowerTerm):
		return true
	}
	return false
}

// PageCount returns ceil(total/pageSize); zero when there is nothing to show.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate returns the window [(page-1)*pageSize, page*pageSize) of matches,
// clamped to the slice bounds.
func Paginate(matches []model.Record, page, pageSize int) []model.Record {
	if pageSize <= 0 || page < 1 {
		return []model.Record{}
	}
	start := (page - 1) * pageSize
	if start > len(matches) {
		start = len(matches)
	}
	end := start + pageSize
	if end > len(matches) {
		end = len(matches)
	}
	out := make([]model.Record, end-start)
	copy(out, matches[start:end])
	return out
}
