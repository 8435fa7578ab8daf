package dupetree

import (
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/iter"
)

// Dedupe runs the whole pipeline over the given roots: walk the trees,
// bucket candidate files by length, hash buckets in parallel to split
// them into duplicate groups and singletons, and return the resulting
// records together with the paths that could not be walked. The record
// order is unspecified; feed them to a ResultSet for stable output.
func Dedupe(roots []string, opts ScanOptions) ([]*FileRecord, []*ScanError) {
	outcomes := make(chan ScanOutcome, 256)
	go ScanTree(roots, opts, outcomes)

	var records []*FileRecord
	var scanErrs []*ScanError
	for outcome := range outcomes {
		switch {
		case outcome.Record != nil:
			records = append(records, outcome.Record)
		case outcome.Err != nil:
			scanErrs = append(scanErrs, outcome.Err)
		}
	}

	grouped := lo.GroupBy(records, func(record *FileRecord) uint64 {
		return record.Length()
	})
	buckets := lo.Values(grouped)

	differentiated := iter.Map(buckets, func(bucket *[]*FileRecord) []*FileRecord {
		return differentiateBucket(*bucket, opts.Stats)
	})

	return lo.Flatten(differentiated), scanErrs
}
