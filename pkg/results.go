package dupetree

import (
	"strings"

	zcsl "github.com/mattkeenan/zerocopyskiplist"
)

// Context labels attached to records held in a ResultSet.
const (
	DuplicateContext = "duplicate"
	UniqueContext    = "unique"
)

// resultKey orders the result skiplist: largest files first, then
// candidate name, then first path as the final tiebreak so every record
// has a distinct key.
type resultKey struct {
	length uint64
	name   string
	path   string
}

// ResultSet holds differentiated records in stable display order,
// tagging each one as a duplicate group or a unique file.
type ResultSet struct {
	skiplist *zcsl.ZeroCopySkiplist[FileRecord, resultKey, string]
}

// NewResultSet creates an empty result set.
func NewResultSet(maxLevels int) *ResultSet {
	if maxLevels < 8 {
		maxLevels = 16 // reasonable default
	}

	getKeyFromItem := func(record *FileRecord) resultKey {
		return resultKey{
			length: record.Length(),
			name:   record.CandidateName(),
			path:   record.firstPath(),
		}
	}

	// Approximate in-memory size; the set is never serialized wholesale.
	getItemSize := func(record *FileRecord) int {
		size := 48
		for _, path := range record.Paths() {
			size += len(path)
		}
		return size
	}

	cmpKey := func(a, b resultKey) int {
		switch {
		case a.length > b.length:
			return -1
		case a.length < b.length:
			return 1
		}
		if c := strings.Compare(a.name, b.name); c != 0 {
			return c
		}
		return strings.Compare(a.path, b.path)
	}

	skiplist := zcsl.MakeZeroCopySkiplist[FileRecord, resultKey, string](
		maxLevels,
		getKeyFromItem,
		getItemSize,
		cmpKey,
	)

	return &ResultSet{skiplist: skiplist}
}

// CollectResults builds a result set from pipeline output.
func CollectResults(records []*FileRecord) *ResultSet {
	results := NewResultSet(16)
	for _, record := range records {
		results.Insert(record)
	}
	return results
}

// Insert adds a record, deriving its context from the path count.
func (rs *ResultSet) Insert(record *FileRecord) bool {
	context := UniqueContext
	if len(record.Paths()) > 1 {
		context = DuplicateContext
	}
	return rs.skiplist.Insert(record, context)
}

// ForEach iterates records in display order with their context,
// stopping early if the callback returns false.
func (rs *ResultSet) ForEach(callback func(*FileRecord, string) bool) {
	for current := rs.skiplist.First(); current != nil; current = current.Next() {
		if !callback(current.Item(), current.Context()) {
			break
		}
	}
}

// Records returns every record in display order.
func (rs *ResultSet) Records() []*FileRecord {
	records := make([]*FileRecord, 0, rs.Length())
	rs.ForEach(func(record *FileRecord, context string) bool {
		records = append(records, record)
		return true
	})
	return records
}

// Duplicates returns only the duplicate groups, in display order.
func (rs *ResultSet) Duplicates() []*FileRecord {
	var records []*FileRecord
	rs.ForEach(func(record *FileRecord, context string) bool {
		if context == DuplicateContext {
			records = append(records, record)
		}
		return true
	})
	return records
}

// Length returns the number of records in the set.
func (rs *ResultSet) Length() int {
	return rs.skiplist.Length()
}

// IsEmpty returns true if the set has no records.
func (rs *ResultSet) IsEmpty() bool {
	return rs.skiplist.IsEmpty()
}

// ResultTotals summarises a result set. Total counts every instance of
// every file; Deduped counts each record once regardless of how many
// paths share its content.
type ResultTotals struct {
	TotalFiles      int
	TotalBytes      uint64
	DedupedFiles    int
	DedupedBytes    uint64
	SingleFiles     int
	SingleBytes     uint64
	SharedGroups    int
	SharedBytes     uint64
	SharedInstances int
}

// Totals walks the set once and accumulates the summary numbers.
func (rs *ResultSet) Totals() ResultTotals {
	var totals ResultTotals
	rs.ForEach(func(record *FileRecord, context string) bool {
		instances := len(record.Paths())
		length := record.Length()

		totals.TotalFiles += instances
		totals.TotalBytes += length * uint64(instances)
		totals.DedupedFiles++
		totals.DedupedBytes += length

		if context == DuplicateContext {
			totals.SharedGroups++
			totals.SharedBytes += length
			totals.SharedInstances += instances
		} else {
			totals.SingleFiles++
			totals.SingleBytes += length
		}
		return true
	})
	return totals
}
