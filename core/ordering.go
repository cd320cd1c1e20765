package core

import "strings"

// Ordering is one "field" or "-field" entry of an ordering query.
type Ordering struct {
	Field     string
	Ascending bool
}

func (ord Ordering) String() string {
	if ord.Ascending {
		return ord.Field
	}
	return "-" + ord.Field
}

// ParseOrderings parses "name,-join_date" into orderings, skipping blank entries.
func ParseOrderings(s string) []Ordering {
	var ords []Ordering
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		ords = append(ords, Ordering{Field: field, Ascending: !descending})
	}
	return ords
}

// LessFunc compares two records on a single field; it returns -1, 0 or 1.
type LessFunc[T any] func(a, b T) int

// SortLess builds a sort.Slice compatible less func from orderings.
// Unknown fields are ignored; fallback breaks ties.
func SortLess[T any](items []T, ords []Ordering, fields map[string]LessFunc[T], fallback LessFunc[T]) func(i, j int) bool {
	return func(i, j int) bool {
		for _, ord := range ords {
			cmp, ok := fields[ord.Field]
			if !ok {
				continue
			}
			c := cmp(items[i], items[j])
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		if fallback != nil {
			return fallback(items[i], items[j]) < 0
		}
		return false
	}
}
