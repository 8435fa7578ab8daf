// Package dupetree finds duplicate files across directory trees using
// size bucketing and staged content hashing, reading as few bytes as
// the decision allows.
//
// # Core API
//
// The main entry point is Dedupe, which walks the given roots and
// returns differentiated file records plus the paths it could not walk:
//
//	records, scanErrs := dupetree.Dedupe([]string{"/data"}, dupetree.ScanOptions{})
//
// Records come back unordered; a ResultSet sorts them for display and
// computes summary totals:
//
//	results := dupetree.CollectResults(records)
//	segments, err := dupetree.RenderReport(results, dupetree.RenderOptions{
//		Format:    dupetree.FormatStandard,
//		Blocksize: "B",
//		Verbosity: dupetree.VerbosityDuplicates,
//	})
//
// Rendered segments can be printed or written to a file in one vectored
// pass with WriteReport.
//
// # Progress
//
// A Stats value handed in through ScanOptions is updated atomically by
// the pipeline and may be polled from another goroutine:
//
//	stats := &dupetree.Stats{}
//	go report(stats)
//	records, _ := dupetree.Dedupe(roots, dupetree.ScanOptions{Stats: stats})
//
// # Configuration
//
// Enable debug output:
//
//	dupetree.SetDebugFlags("scan,hash")
//	dupetree.SetVerboseLevel(2)
package dupetree
