package dupetree

import (
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/iter"
)

// differentiateBucket resolves one same-length bucket into duplicate
// groups and singletons, reading file content as lazily as possible.
//
// Singleton buckets and zero-length buckets need no reads at all. For
// everything else a leading-block hash is computed first; whole-file
// hashes are then computed only for records whose leading block
// collides with another record's. Files no longer than one block reuse
// the leading-block hash as the full hash instead of reading again.
// Records whose leading-block read failed take no further part in
// hashing and stay unmerged.
func differentiateBucket(bucket []*FileRecord, stats *Stats) []*FileRecord {
	if len(bucket) == 0 {
		panic("differentiateBucket: empty length bucket")
	}

	length := bucket[0].Length()
	if length == 0 || len(bucket) == 1 {
		return bucket
	}

	iter.ForEach(bucket, func(record **FileRecord) {
		(*record).HashPartial(stats)
	})

	if length <= HashBlockSize {
		for _, record := range bucket {
			if _, ok := record.PartialHash(); ok {
				record.promotePartialToFull()
			}
		}
		return consolidate(bucket)
	}

	counts := make(map[Hash128]int, len(bucket))
	for _, record := range bucket {
		if partial, ok := record.PartialHash(); ok {
			counts[partial]++
		}
	}

	flagged := lo.Filter(bucket, func(record *FileRecord, _ int) bool {
		partial, ok := record.PartialHash()
		return ok && counts[partial] > 1
	})

	if IsDebugEnabled("hash") {
		VerboseLog(3, "bucket length=%d size=%d full-hashing %d", length, len(bucket), len(flagged))
	}

	iter.ForEach(flagged, func(record **FileRecord) {
		(*record).HashFull(stats)
	})

	return consolidate(bucket)
}
