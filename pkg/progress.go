package dupetree

import "sync/atomic"

// Stats holds live counters for a running deduplication pipeline. All
// fields are atomic so that a caller may poll them from another
// goroutine (for a progress display) without locking. A nil *Stats is
// valid everywhere in the pipeline and discards all updates.
type Stats struct {
	FilesDiscovered atomic.Int64
	DirsWalked      atomic.Int64
	PartialHashed   atomic.Int64
	FullHashed      atomic.Int64
	BytesRead       atomic.Int64
	HashFailures    atomic.Int64
	Errors          atomic.Int64
}

// StatsSnapshot is a point-in-time copy of the pipeline counters.
type StatsSnapshot struct {
	FilesDiscovered int64
	DirsWalked      int64
	PartialHashed   int64
	FullHashed      int64
	BytesRead       int64
	HashFailures    int64
	Errors          int64
}

// Snapshot returns a consistent-enough copy of the counters for
// display. Individual loads are atomic; the set as a whole may straddle
// concurrent updates.
func (s *Stats) Snapshot() StatsSnapshot {
	if s == nil {
		return StatsSnapshot{}
	}
	return StatsSnapshot{
		FilesDiscovered: s.FilesDiscovered.Load(),
		DirsWalked:      s.DirsWalked.Load(),
		PartialHashed:   s.PartialHashed.Load(),
		FullHashed:      s.FullHashed.Load(),
		BytesRead:       s.BytesRead.Load(),
		HashFailures:    s.HashFailures.Load(),
		Errors:          s.Errors.Load(),
	}
}

func (s *Stats) addFileDiscovered() {
	if s == nil {
		return
	}
	s.FilesDiscovered.Add(1)
}

func (s *Stats) addDirWalked() {
	if s == nil {
		return
	}
	s.DirsWalked.Add(1)
}

func (s *Stats) addPartialHashed() {
	if s == nil {
		return
	}
	s.PartialHashed.Add(1)
}

func (s *Stats) addFullHashed() {
	if s == nil {
		return
	}
	s.FullHashed.Add(1)
}

func (s *Stats) addBytesRead(n int64) {
	if s == nil {
		return
	}
	s.BytesRead.Add(n)
}

func (s *Stats) addHashFailure() {
	if s == nil {
		return
	}
	s.HashFailures.Add(1)
}

func (s *Stats) addError() {
	if s == nil {
		return
	}
	s.Errors.Add(1)
}
