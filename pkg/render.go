package dupetree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Supported output formats.
const (
	FormatStandard = "standard"
	FormatJSON     = "json"
	FormatFdupes   = "fdupes"
	FormatOff      = "off"
)

// Supported verbosity levels. Quiet limits output to the summary,
// duplicates adds one block per duplicate group, all lists every file.
const (
	VerbosityQuiet      = "quiet"
	VerbosityDuplicates = "duplicates"
	VerbosityAll        = "all"
)

// RenderOptions selects how a result set is formatted.
type RenderOptions struct {
	Format    string // standard, json, fdupes or off
	Blocksize string // B, K, M or G
	Verbosity string // quiet, duplicates or all
}

// RenderReport formats a result set into a sequence of byte segments,
// one segment per logical block of output. Segments can be written
// directly or handed to WriteReport for vectored file output. The off
// format renders nothing.
func RenderReport(results *ResultSet, opts RenderOptions) ([][]byte, error) {
	if IsDebugEnabled("render") {
		VerboseLog(3, "rendering %d records as %s", results.Length(), opts.Format)
	}

	switch opts.Format {
	case FormatOff:
		return nil, nil
	case FormatStandard:
		return renderStandard(results, opts), nil
	case FormatJSON:
		return renderJSON(results, opts)
	case FormatFdupes:
		return renderFdupes(results, opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: %s, %s, %s, %s)",
			opts.Format, FormatStandard, FormatJSON, FormatFdupes, FormatOff)
	}
}

// selectRecords applies the verbosity filter.
func selectRecords(results *ResultSet, verbosity string) []*FileRecord {
	switch verbosity {
	case VerbosityAll:
		return results.Records()
	case VerbosityQuiet:
		return nil
	default:
		return results.Duplicates()
	}
}

func renderStandard(results *ResultSet, opts RenderOptions) [][]byte {
	totals := results.Totals()

	var summary bytes.Buffer
	fmt.Fprintf(&summary, "%d Total files (with duplicates): %s\n",
		totals.TotalFiles, formatSize(totals.TotalBytes, opts.Blocksize))
	fmt.Fprintf(&summary, "%d Total files (without duplicates): %s\n",
		totals.DedupedFiles, formatSize(totals.DedupedBytes, opts.Blocksize))
	fmt.Fprintf(&summary, "%d Single instance files: %s\n",
		totals.SingleFiles, formatSize(totals.SingleBytes, opts.Blocksize))
	fmt.Fprintf(&summary, "%d Shared instance files: %s (%d instances)\n",
		totals.SharedGroups, formatSize(totals.SharedBytes, opts.Blocksize), totals.SharedInstances)

	segments := [][]byte{summary.Bytes()}
	for _, record := range selectRecords(results, opts.Verbosity) {
		var block bytes.Buffer
		fmt.Fprintf(&block, "%s %d instances (%s each):\n",
			record.CandidateName(), len(record.Paths()), formatSize(record.Length(), opts.Blocksize))
		for _, path := range record.Paths() {
			fmt.Fprintf(&block, "\t%s\n", path)
		}
		segments = append(segments, block.Bytes())
	}
	return segments
}

func renderJSON(results *ResultSet, opts RenderOptions) ([][]byte, error) {
	records := selectRecords(results, opts.Verbosity)
	if records == nil {
		records = []*FileRecord{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode results as JSON: %w", err)
	}
	data = append(data, '\n')
	return [][]byte{data}, nil
}

func renderFdupes(results *ResultSet, opts RenderOptions) [][]byte {
	var segments [][]byte
	for _, record := range selectRecords(results, opts.Verbosity) {
		var block bytes.Buffer
		for _, path := range record.Paths() {
			block.WriteString(path)
			block.WriteByte('\n')
		}
		block.WriteByte('\n')
		segments = append(segments, block.Bytes())
	}
	return segments
}

// formatSize renders a byte count in the display blocksize. Bytes stay
// integral; the larger units show two decimal places.
func formatSize(bytes uint64, blocksize string) string {
	switch strings.ToUpper(blocksize) {
	case "K":
		return fmt.Sprintf("%.2f Kilobytes", float64(bytes)/1024)
	case "M":
		return fmt.Sprintf("%.2f Megabytes", float64(bytes)/(1024*1024))
	case "G":
		return fmt.Sprintf("%.2f Gigabytes", float64(bytes)/(1024*1024*1024))
	default:
		return fmt.Sprintf("%d Bytes", bytes)
	}
}
