package dupetree

// consolidate merges records that carry identical hash signatures into
// duplicate groups. The first record seen for a signature survives and
// collects the paths of every later match; records missing either hash
// pass through untouched, so a file whose hashing failed can never be
// declared a duplicate of anything. Records left with no paths are
// dropped.
func consolidate(records []*FileRecord) []*FileRecord {
	merged := make([]*FileRecord, 0, len(records))
	winners := make(map[hashSignature]*FileRecord)

	for _, record := range records {
		if len(record.paths) == 0 {
			continue
		}
		if !record.mergeable() {
			merged = append(merged, record)
			continue
		}

		sig := record.signature()
		if winner, ok := winners[sig]; ok {
			winner.absorb(record)
			continue
		}
		winners[sig] = record
		merged = append(merged, record)
	}

	return merged
}
