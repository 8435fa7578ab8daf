package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	dupetree "github.com/dupetree/dupetree/pkg"
)

func TestConfirmOverwriteMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	var out bytes.Buffer

	ok, err := confirmOverwrite(path, strings.NewReader(""), &out)
	if err != nil {
		t.Fatalf("Failed to confirm: %v", err)
	}
	if !ok {
		t.Error("Expected a missing file to need no confirmation")
	}
	if out.Len() != 0 {
		t.Errorf("Expected no prompt for a missing file, got %q", out.String())
	}
}

func TestConfirmOverwriteAnswers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	if err := dupetree.WriteReport(path, [][]byte{[]byte("old\n")}); err != nil {
		t.Fatalf("Failed to seed report file: %v", err)
	}

	tests := []struct {
		answer string
		want   bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"", false}, // EOF with no answer defaults to no
		{"maybe\n", false},
	}

	for _, test := range tests {
		var out bytes.Buffer
		ok, err := confirmOverwrite(path, strings.NewReader(test.answer), &out)
		if err != nil {
			t.Fatalf("Answer %q: failed to confirm: %v", test.answer, err)
		}
		if ok != test.want {
			t.Errorf("Answer %q: expected %t, got %t", test.answer, test.want, ok)
		}
		if !strings.Contains(out.String(), "Overwrite?") {
			t.Errorf("Answer %q: expected a prompt, got %q", test.answer, out.String())
		}
	}
}
