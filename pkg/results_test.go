package dupetree

import (
	"reflect"
	"testing"
)

func groupRecord(length uint64, paths ...string) *FileRecord {
	record := NewFileRecord(paths[0], length)
	for _, path := range paths[1:] {
		record.absorb(NewFileRecord(path, length))
	}
	return record
}

func TestResultSetOrdersByLengthDescending(t *testing.T) {
	set := CollectResults([]*FileRecord{
		NewFileRecord("/x/small.dat", 10),
		NewFileRecord("/x/large.dat", 300),
		NewFileRecord("/x/mid.dat", 50),
	})

	records := set.Records()
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	want := []uint64{300, 50, 10}
	for i, record := range records {
		if record.Length() != want[i] {
			t.Errorf("Position %d: expected length %d, got %d", i, want[i], record.Length())
		}
	}
}

func TestResultSetTiebreaks(t *testing.T) {
	set := CollectResults([]*FileRecord{
		NewFileRecord("/x/bb.dat", 100),
		NewFileRecord("/y/aa.dat", 100),
		NewFileRecord("/b/same.dat", 100),
		NewFileRecord("/a/same.dat", 100),
	})

	var paths []string
	for _, record := range set.Records() {
		paths = append(paths, record.Paths()[0])
	}

	// Equal lengths fall back to name, equal names to the first path
	want := []string{"/y/aa.dat", "/x/bb.dat", "/a/same.dat", "/b/same.dat"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Expected order %v, got %v", want, paths)
	}
}

func TestResultSetContexts(t *testing.T) {
	group := groupRecord(100, "/x/a.dat", "/y/a.dat")
	single := NewFileRecord("/x/b.dat", 50)
	set := CollectResults([]*FileRecord{group, single})

	contexts := make(map[string]string)
	set.ForEach(func(record *FileRecord, context string) bool {
		contexts[record.Paths()[0]] = context
		return true
	})

	if contexts["/x/a.dat"] != DuplicateContext {
		t.Errorf("Expected the group tagged %q, got %q", DuplicateContext, contexts["/x/a.dat"])
	}
	if contexts["/x/b.dat"] != UniqueContext {
		t.Errorf("Expected the single tagged %q, got %q", UniqueContext, contexts["/x/b.dat"])
	}

	duplicates := set.Duplicates()
	if len(duplicates) != 1 || duplicates[0] != group {
		t.Errorf("Expected Duplicates to return only the group, got %v", duplicates)
	}
}

func TestResultSetForEachStopsEarly(t *testing.T) {
	set := CollectResults([]*FileRecord{
		NewFileRecord("/x/a.dat", 10),
		NewFileRecord("/x/b.dat", 20),
	})

	visited := 0
	set.ForEach(func(record *FileRecord, context string) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Errorf("Expected iteration to stop after 1 record, got %d", visited)
	}
}

func TestResultSetTotals(t *testing.T) {
	set := CollectResults([]*FileRecord{
		groupRecord(100, "/x/a.dat", "/y/a.dat"),
		NewFileRecord("/x/b.dat", 50),
	})

	want := ResultTotals{
		TotalFiles:      3,
		TotalBytes:      250,
		DedupedFiles:    2,
		DedupedBytes:    150,
		SingleFiles:     1,
		SingleBytes:     50,
		SharedGroups:    1,
		SharedBytes:     100,
		SharedInstances: 2,
	}
	if got := set.Totals(); got != want {
		t.Errorf("Expected totals %+v, got %+v", want, got)
	}
}

func TestResultSetEmpty(t *testing.T) {
	set := NewResultSet(16)

	if !set.IsEmpty() || set.Length() != 0 {
		t.Error("Expected a fresh set to be empty")
	}
	if got := set.Totals(); got != (ResultTotals{}) {
		t.Errorf("Expected zero totals, got %+v", got)
	}
	if records := set.Records(); len(records) != 0 {
		t.Errorf("Expected no records, got %v", records)
	}
}
