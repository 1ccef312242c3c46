package trains

import (
	"testing"
)

// feedRecords is a small feed in delivery order, mixing late and on-time
// trains, shared stations, and a malformed number.
func feedRecords() []Record {
	return []Record{
		{Number: "12", RouteName: "ICE 500", From: "Munich", To: "Hamburg", Punctuality: "5MI LATE", Heading: "N", LastVisitedStation: "Nuremberg"},
		{Number: "7", RouteName: "RE 1", From: "Hamburg", To: "Berlin", Punctuality: "ON TIME", Heading: "E", LastVisitedStation: "Spandau"},
		{Number: "3", RouteName: "IC 2083", From: "Berlin", To: "Dresden", Punctuality: "2HR", Heading: "S", LastVisitedStation: "Elsterwerda"},
		{Number: "N/A", RouteName: "S 1", From: "Berlin", To: "Potsdam", Punctuality: "2HR LATE", Heading: "W", LastVisitedStation: "Wannsee"},
	}
}

func numbers(rows []Record) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Number
	}
	return out
}

func sameOrder(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDeriveDefaultView(t *testing.T) {
	// The zero View sorts by number ascending with every train shown.
	rows := Derive(feedRecords(), View{})

	// "N/A" parses as 0 and sorts first.
	if got := numbers(rows); !sameOrder(got, "N/A", "3", "7", "12") {
		t.Errorf("default view order = %v, want [N/A 3 7 12]", got)
	}
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	records := feedRecords()
	Derive(records, View{Key: SortByRoute, Dir: Desc, LateOnly: true})

	if got := numbers(records); !sameOrder(got, "12", "7", "3", "N/A") {
		t.Errorf("input order changed to %v", got)
	}
}

func TestDeriveReturnsFreshSlice(t *testing.T) {
	records := feedRecords()
	rows := Derive(records, View{})

	rows[0].Number = "changed"
	if records[0].Number == "changed" || records[3].Number == "changed" {
		t.Error("mutating the derived rows leaked into the input records")
	}
}

func TestDeriveLateOnly(t *testing.T) {
	rows := Derive(feedRecords(), View{LateOnly: true, Key: SortByRoute})

	if len(rows) != 2 {
		t.Fatalf("expected 2 late rows, got %d", len(rows))
	}
	for _, r := range rows {
		if !r.Late() {
			t.Errorf("row %s is not late", r.Number)
		}
	}
}

func TestDeriveLateOnlyKeepsFeedOrderOnTies(t *testing.T) {
	// Every record shares the same From, so a From sort must keep the
	// filtered feed order.
	records := []Record{
		{Number: "1", From: "Berlin", Punctuality: "LATE"},
		{Number: "2", From: "Berlin", Punctuality: "ON TIME"},
		{Number: "3", From: "Berlin", Punctuality: "LATE"},
		{Number: "4", From: "Berlin", Punctuality: "LATE"},
	}

	asc := Derive(records, View{Key: SortByFrom, LateOnly: true})
	if got := numbers(asc); !sameOrder(got, "1", "3", "4") {
		t.Errorf("asc tie order = %v, want [1 3 4]", got)
	}

	// Desc flips the comparison outcome, not the sequence, so ties keep
	// the same order in both directions.
	desc := Derive(records, View{Key: SortByFrom, Dir: Desc, LateOnly: true})
	if got := numbers(desc); !sameOrder(got, "1", "3", "4") {
		t.Errorf("desc tie order = %v, want [1 3 4]", got)
	}
}

func TestDeriveDescReversesDistinctKeys(t *testing.T) {
	records := []Record{
		{Number: "2", From: "Berlin"},
		{Number: "10", From: "Aachen"},
		{Number: "1", From: "Cottbus"},
	}

	asc := Derive(records, View{Key: SortByFrom})
	if got := numbers(asc); !sameOrder(got, "10", "2", "1") {
		t.Errorf("asc order = %v, want [10 2 1]", got)
	}

	desc := Derive(records, View{Key: SortByFrom, Dir: Desc})
	if got := numbers(desc); !sameOrder(got, "1", "2", "10") {
		t.Errorf("desc order = %v, want [1 2 10]", got)
	}
}

func TestDeriveNumberSortIsNumeric(t *testing.T) {
	records := []Record{
		{Number: "100"},
		{Number: "9"},
		{Number: "25"},
	}

	rows := Derive(records, View{Key: SortByNumber})
	if got := numbers(rows); !sameOrder(got, "9", "25", "100") {
		t.Errorf("numeric order = %v, want [9 25 100]", got)
	}
}

func TestDeriveMalformedNumbersSortAsZero(t *testing.T) {
	records := []Record{
		{Number: "5"},
		{Number: "N/A"},
		{Number: "-1"},
		{Number: "x9"},
	}

	// N/A and x9 both parse as 0: feed order between them, after -1,
	// before 5.
	rows := Derive(records, View{Key: SortByNumber})
	if got := numbers(rows); !sameOrder(got, "-1", "N/A", "x9", "5") {
		t.Errorf("order = %v, want [-1 N/A x9 5]", got)
	}
}

func TestDeriveStatusSortUsesDisplayForm(t *testing.T) {
	records := []Record{
		{Number: "1", Punctuality: "ON TIME"},
		{Number: "2", Punctuality: "5MI LATE"},
		{Number: "3", Punctuality: "2HR"},
	}

	// Display forms: "on time", "5 min. late", "2 hr."; digits sort
	// before letters.
	rows := Derive(records, View{Key: SortByStatus})
	if got := numbers(rows); !sameOrder(got, "3", "2", "1") {
		t.Errorf("status order = %v, want [3 2 1]", got)
	}
}

func TestDeriveTextSortIsCaseInsensitive(t *testing.T) {
	records := []Record{
		{Number: "1", RouteName: "alpha"},
		{Number: "2", RouteName: "BETA"},
		{Number: "3", RouteName: "Alpha Express"},
	}

	rows := Derive(records, View{Key: SortByRoute})
	if got := numbers(rows); !sameOrder(got, "1", "3", "2") {
		t.Errorf("route order = %v, want [1 3 2]", got)
	}
}

func TestDeriveEmptyInput(t *testing.T) {
	rows := Derive(nil, View{LateOnly: true})
	if len(rows) != 0 {
		t.Errorf("expected no rows for empty input, got %d", len(rows))
	}
}

func TestDeriveAllFilteredOut(t *testing.T) {
	records := []Record{
		{Number: "1", Punctuality: "ON TIME"},
		{Number: "2", Punctuality: "2HR"},
	}

	rows := Derive(records, View{LateOnly: true})
	if len(rows) != 0 {
		t.Errorf("expected no rows when nothing is late, got %d", len(rows))
	}
}

func TestDeriveIdempotent(t *testing.T) {
	v := View{Key: SortByStatus, Dir: Desc, LateOnly: true}
	first := Derive(feedRecords(), v)
	second := Derive(feedRecords(), v)

	if !sameOrder(numbers(first), numbers(second)...) {
		t.Errorf("repeated derivation differs: %v vs %v", numbers(first), numbers(second))
	}
}

func TestViewSelect(t *testing.T) {
	var v View

	// Selecting the active column flips the direction.
	v.Select(SortByNumber)
	if v.Key != SortByNumber || v.Dir != Desc {
		t.Errorf("after selecting active column: key=%v dir=%v, want Number desc", v.Key, v.Dir)
	}
	v.Select(SortByNumber)
	if v.Dir != Asc {
		t.Errorf("second select should flip back to asc, got %v", v.Dir)
	}

	// Selecting a new column sorts it ascending, whatever the previous
	// direction was.
	v.Select(SortByNumber) // back to desc
	v.Select(SortByStatus)
	if v.Key != SortByStatus || v.Dir != Asc {
		t.Errorf("after selecting new column: key=%v dir=%v, want Status asc", v.Key, v.Dir)
	}
}

func TestViewToggleLateOnly(t *testing.T) {
	var v View
	if v.LateOnly {
		t.Error("late-only should default to off")
	}
	v.ToggleLateOnly()
	if !v.LateOnly {
		t.Error("toggle should turn late-only on")
	}
	v.ToggleLateOnly()
	if v.LateOnly {
		t.Error("second toggle should turn late-only off")
	}
}

func TestViewSurvivesRecordChanges(t *testing.T) {
	// A View is plain state: deriving against different feeds never
	// alters it.
	v := View{Key: SortByTo, Dir: Desc, LateOnly: true}
	Derive(feedRecords(), v)
	Derive(nil, v)

	if v.Key != SortByTo || v.Dir != Desc || !v.LateOnly {
		t.Errorf("view changed to %+v", v)
	}
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		input string
		want  SortKey
		err   bool
	}{
		{"number", SortByNumber, false},
		{"Number", SortByNumber, false},
		{"n", SortByNumber, false},
		{"route", SortByRoute, false},
		{"routeName", SortByRoute, false},
		{"name", SortByRoute, false},
		{"from", SortByFrom, false},
		{"f", SortByFrom, false},
		{"to", SortByTo, false},
		{"t", SortByTo, false},
		{"status", SortByStatus, false},
		{"s", SortByStatus, false},
		{"bogus", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortKey(tt.input)
			if tt.err {
				if err == nil {
					t.Errorf("ParseSortKey(%q) expected error, got nil", tt.input)
				}
			} else {
				if err != nil {
					t.Errorf("ParseSortKey(%q) unexpected error: %v", tt.input, err)
				}
				if got != tt.want {
					t.Errorf("ParseSortKey(%q) = %v, want %v", tt.input, got, tt.want)
				}
			}
		})
	}
}

func TestSortKeyString(t *testing.T) {
	tests := []struct {
		k    SortKey
		want string
	}{
		{SortByNumber, "Number"},
		{SortByRoute, "Route"},
		{SortByFrom, "From"},
		{SortByTo, "To"},
		{SortByStatus, "Status"},
		{SortKey(99), "?"},
	}

	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("SortKey(%d).String() = %q, want %q", int(tt.k), got, tt.want)
		}
	}

	// Every real key has a label and parses back to itself.
	for k := SortKey(0); k < SortKeyCount; k++ {
		label := k.String()
		if label == "?" {
			t.Errorf("SortKey(%d) has no label", int(k))
			continue
		}
		parsed, err := ParseSortKey(label)
		if err != nil {
			t.Errorf("ParseSortKey(%q): %v", label, err)
		} else if parsed != k {
			t.Errorf("ParseSortKey(%q) = %v, want %v", label, parsed, k)
		}
	}
}

func TestSortDir(t *testing.T) {
	if Asc.String() != "asc" || Desc.String() != "desc" {
		t.Error("SortDir labels wrong")
	}
	if Asc.Indicator() != "▲" || Desc.Indicator() != "▼" {
		t.Error("SortDir indicators wrong")
	}
	if Asc.Toggle() != Desc || Desc.Toggle() != Asc {
		t.Error("SortDir.Toggle wrong")
	}
}
