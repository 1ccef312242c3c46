package trains

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SortKey selects the column the table is ordered by.
type SortKey int

const (
	SortByNumber SortKey = iota
	SortByRoute
	SortByFrom
	SortByTo
	SortByStatus
	SortKeyCount // sentinel
)

// String returns the column label for the sort key.
func (k SortKey) String() string {
	switch k {
	case SortByNumber:
		return "Number"
	case SortByRoute:
		return "Route"
	case SortByFrom:
		return "From"
	case SortByTo:
		return "To"
	case SortByStatus:
		return "Status"
	}
	return "?"
}

// ParseSortKey maps a column name to its SortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(s) {
	case "number", "n":
		return SortByNumber, nil
	case "route", "routename", "name":
		return SortByRoute, nil
	case "from", "f":
		return SortByFrom, nil
	case "to", "t":
		return SortByTo, nil
	case "status", "s":
		return SortByStatus, nil
	default:
		return 0, fmt.Errorf("unknown sort column %q (valid: number, route, from, to, status)", s)
	}
}

// SortDir is the sort direction.
type SortDir int

const (
	Asc SortDir = iota
	Desc
)

// String returns the direction label.
func (d SortDir) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// Indicator returns the header arrow for the direction.
func (d SortDir) Indicator() string {
	if d == Desc {
		return "▼"
	}
	return "▲"
}

// Toggle returns the opposite direction.
func (d SortDir) Toggle() SortDir {
	if d == Asc {
		return Desc
	}
	return Asc
}

// View is the per-instance table state: active sort column, direction, and
// the late-only filter. The zero value is the default view, sorted by
// number ascending with every train shown. A View belongs to one table
// instance and is never reset by feed deliveries.
type View struct {
	Key      SortKey
	Dir      SortDir
	LateOnly bool
}

// Select applies a header click on column k: selecting the active column
// flips the direction, selecting a new column sorts it ascending.
func (v *View) Select(k SortKey) {
	if v.Key == k {
		v.Dir = v.Dir.Toggle()
		return
	}
	v.Key = k
	v.Dir = Asc
}

// ToggleLateOnly flips the late-only filter.
func (v *View) ToggleLateOnly() {
	v.LateOnly = !v.LateOnly
}

// Derive returns the rows visible under v: records kept by the late-only
// filter, stably ordered by the active column. Records never mutate; the
// result is a fresh slice and may be empty. Ties keep their feed order
// under both directions because Desc flips the comparison outcome rather
// than reversing the sequence.
func Derive(records []Record, v View) []Record {
	rows := make([]Record, 0, len(records))
	for _, r := range records {
		if v.LateOnly && !r.Late() {
			continue
		}
		rows = append(rows, r)
	}

	less := lessFunc(v.Key)
	sort.SliceStable(rows, func(i, j int) bool {
		if v.Dir == Desc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
	return rows
}

// lessFunc returns the strict comparison for a column. Number compares
// numerically, the text columns case-insensitively, and status by its
// display form.
func lessFunc(k SortKey) func(a, b Record) bool {
	switch k {
	case SortByRoute:
		return func(a, b Record) bool { return textLess(a.RouteName, b.RouteName) }
	case SortByFrom:
		return func(a, b Record) bool { return textLess(a.From, b.From) }
	case SortByTo:
		return func(a, b Record) bool { return textLess(a.To, b.To) }
	case SortByStatus:
		return func(a, b Record) bool { return textLess(a.Status(), b.Status()) }
	default:
		return func(a, b Record) bool { return numberValue(a.Number) < numberValue(b.Number) }
	}
}

func textLess(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

// numberValue parses a train number for ordering. Unparseable numbers sort
// as 0 while the table still shows them as supplied.
func numberValue(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
