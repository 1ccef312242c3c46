// Package trains defines the train record schema and the pure view
// derivation behind the viewer table.
//
// A Record arrives from the feed and is never modified. Derive computes
// the visible, ordered rows for a View; both are deterministic and free
// of side effects, so they can run on every state change.
package trains

import (
	"encoding/json"
	"strings"
)

// Record is one train as delivered by the feed.
type Record struct {
	Number             string `json:"number"`
	RouteName          string `json:"routeName"`
	From               string `json:"from"`
	To                 string `json:"to"`
	Punctuality        string `json:"punctuality"`
	Heading            string `json:"heading"`
	LastVisitedStation string `json:"lastVisitedStation"`
}

// UnmarshalJSON accepts the train number as either a JSON string or a bare
// number. Feeds are inconsistent about this field; the textual form is kept
// as-is for display.
func (r *Record) UnmarshalJSON(data []byte) error {
	type alias Record
	aux := struct {
		Number json.RawMessage `json:"number"`
		*alias
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Number = numberText(aux.Number)
	return nil
}

// numberText extracts the display text of a raw JSON number field.
func numberText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if string(raw) == "null" {
		return ""
	}
	return string(raw)
}

// DisplayStatus converts a raw punctuality code into its display form:
// the first "MI" becomes " min.", then the first "HR" becomes " hr.",
// then the whole string is lowercased. "5MI LATE" renders as
// "5 min. late" and "2HR" as "2 hr.". An empty code stays empty.
func DisplayStatus(raw string) string {
	s := strings.Replace(raw, "MI", " min.", 1)
	s = strings.Replace(s, "HR", " hr.", 1)
	return strings.ToLower(s)
}

// IsLate reports whether a raw punctuality code marks the train late.
func IsLate(raw string) bool {
	return strings.HasSuffix(raw, "LATE")
}

// Status returns the record's punctuality in display form.
func (r Record) Status() string {
	return DisplayStatus(r.Punctuality)
}

// Late reports whether the record's punctuality marks it late.
func (r Record) Late() bool {
	return IsLate(r.Punctuality)
}

// Identity returns a stable per-train key built from heading, number, and
// last visited station. The viewer uses it to keep the cursor on the same
// train when a new feed delivery reorders or filters the table.
func (r Record) Identity() string {
	return r.Heading + r.Number + r.LastVisitedStation
}

// CountLate returns how many records are currently marked late.
func CountLate(records []Record) int {
	var n int
	for _, r := range records {
		if r.Late() {
			n++
		}
	}
	return n
}
