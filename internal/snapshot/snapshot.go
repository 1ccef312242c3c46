// Package snapshot builds immutable views of the train store.
//
// A TrainSnapshot captures the full record list and its counts at a point
// in time. Snapshots are rebuilt on each DB change and swapped atomically
// into the UI model; sorting and filtering always run against a snapshot,
// never against the store.
package snapshot

import (
	"time"

	"github.com/njohns-tmpl/TrainTracker/internal/store"
	"github.com/njohns-tmpl/TrainTracker/internal/trains"
)

// TrainSnapshot is an immutable, self-contained view of the train feed.
type TrainSnapshot struct {
	// Records in feed delivery order.
	Records []trains.Record

	// Counts.
	Total int
	Late  int

	// Timestamp of snapshot creation.
	BuiltAt time.Time
}

// Build queries the store and returns a complete snapshot.
func Build(s *store.Store) (*TrainSnapshot, error) {
	records, err := s.ListTrains()
	if err != nil {
		return nil, err
	}

	// Use COUNT(*) rather than len(records) so the headline number stays
	// honest if the listing is ever limited.
	total, err := s.CountTrains()
	if err != nil {
		return nil, err
	}

	return &TrainSnapshot{
		Records: records,
		Total:   total,
		Late:    trains.CountLate(records),
		BuiltAt: time.Now(),
	}, nil
}
