package dupetree

import (
	"encoding/json"
	"strings"
	"testing"
)

func renderTestSet() *ResultSet {
	return CollectResults([]*FileRecord{
		groupRecord(100, "/x/a.txt", "/y/a.txt"),
		NewFileRecord("/x/b.dat", 50),
	})
}

func TestRenderStandardSummary(t *testing.T) {
	segments, err := RenderReport(renderTestSet(), RenderOptions{
		Format:    FormatStandard,
		Blocksize: "B",
		Verbosity: VerbosityDuplicates,
	})
	if err != nil {
		t.Fatalf("Failed to render: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("Expected summary plus one group block, got %d segments", len(segments))
	}

	wantSummary := "3 Total files (with duplicates): 250 Bytes\n" +
		"2 Total files (without duplicates): 150 Bytes\n" +
		"1 Single instance files: 50 Bytes\n" +
		"1 Shared instance files: 100 Bytes (2 instances)\n"
	if got := string(segments[0]); got != wantSummary {
		t.Errorf("Summary mismatch.\nWant:\n%s\nGot:\n%s", wantSummary, got)
	}

	wantGroup := "a.txt 2 instances (100 Bytes each):\n\t/x/a.txt\n\t/y/a.txt\n"
	if got := string(segments[1]); got != wantGroup {
		t.Errorf("Group block mismatch.\nWant:\n%s\nGot:\n%s", wantGroup, got)
	}
}

func TestRenderStandardVerbosity(t *testing.T) {
	quiet, err := RenderReport(renderTestSet(), RenderOptions{
		Format:    FormatStandard,
		Blocksize: "B",
		Verbosity: VerbosityQuiet,
	})
	if err != nil {
		t.Fatalf("Failed to render: %v", err)
	}
	if len(quiet) != 1 {
		t.Errorf("Expected quiet output to carry only the summary, got %d segments", len(quiet))
	}

	all, err := RenderReport(renderTestSet(), RenderOptions{
		Format:    FormatStandard,
		Blocksize: "B",
		Verbosity: VerbosityAll,
	})
	if err != nil {
		t.Fatalf("Failed to render: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected summary plus every record, got %d segments", len(all))
	}
	// Largest record first
	if !strings.HasPrefix(string(all[1]), "a.txt 2 instances") {
		t.Errorf("Expected the group block first, got %q", string(all[1]))
	}
	if !strings.HasPrefix(string(all[2]), "b.dat 1 instances") {
		t.Errorf("Expected the single block second, got %q", string(all[2]))
	}
}

func TestRenderFdupes(t *testing.T) {
	segments, err := RenderReport(renderTestSet(), RenderOptions{
		Format:    FormatFdupes,
		Verbosity: VerbosityDuplicates,
	})
	if err != nil {
		t.Fatalf("Failed to render: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("Expected one group block, got %d segments", len(segments))
	}
	want := "/x/a.txt\n/y/a.txt\n\n"
	if got := string(segments[0]); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRenderJSON(t *testing.T) {
	quiet, err := RenderReport(renderTestSet(), RenderOptions{
		Format:    FormatJSON,
		Verbosity: VerbosityQuiet,
	})
	if err != nil {
		t.Fatalf("Failed to render: %v", err)
	}
	if len(quiet) != 1 || string(quiet[0]) != "[]\n" {
		t.Fatalf("Expected an empty JSON array, got %v", quiet)
	}

	segments, err := RenderReport(renderTestSet(), RenderOptions{
		Format:    FormatJSON,
		Verbosity: VerbosityAll,
	})
	if err != nil {
		t.Fatalf("Failed to render: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("Expected a single JSON segment, got %d", len(segments))
	}

	var decoded []struct {
		FileLength uint64   `json:"file_length"`
		FilePaths  []string `json:"file_paths"`
	}
	if err := json.Unmarshal(segments[0], &decoded); err != nil {
		t.Fatalf("Failed to decode JSON output: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(decoded))
	}
	if decoded[0].FileLength != 100 || len(decoded[0].FilePaths) != 2 {
		t.Errorf("Expected the group first, got %+v", decoded[0])
	}
	if decoded[1].FileLength != 50 {
		t.Errorf("Expected the single second, got %+v", decoded[1])
	}
}

func TestRenderOff(t *testing.T) {
	segments, err := RenderReport(renderTestSet(), RenderOptions{Format: FormatOff})
	if err != nil {
		t.Fatalf("Failed to render: %v", err)
	}
	if segments != nil {
		t.Errorf("Expected no output for the off format, got %v", segments)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := RenderReport(renderTestSet(), RenderOptions{Format: "bogus"})
	if err == nil {
		t.Fatal("Expected an error for an unknown format")
	}
	if !strings.Contains(err.Error(), "bogus") {
		t.Errorf("Expected the format name in the error, got %v", err)
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes     uint64
		blocksize string
		want      string
	}{
		{512, "B", "512 Bytes"},
		{512, "", "512 Bytes"},
		{1536, "K", "1.50 Kilobytes"},
		{1536, "k", "1.50 Kilobytes"},
		{1048576, "M", "1.00 Megabytes"},
		{1073741824, "G", "1.00 Gigabytes"},
	}

	for _, test := range tests {
		if got := formatSize(test.bytes, test.blocksize); got != test.want {
			t.Errorf("formatSize(%d, %q): expected %q, got %q", test.bytes, test.blocksize, got, test.want)
		}
	}
}
