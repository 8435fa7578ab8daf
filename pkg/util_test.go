package dupetree

import (
	"reflect"
	"testing"
)

func TestParseHumanSize(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		wantErr  bool
	}{
		{"0", 0, false},
		{"500", 500, false},
		{"1B", 1, false},
		{"10K", 10240, false},
		{"10KB", 10240, false},
		{"512k", 524288, false},
		{"1.5K", 1536, false},
		{"2M", 2097152, false},
		{"2MB", 2097152, false},
		{"1G", 1073741824, false},
		{" 4K ", 4096, false},
		{"", 0, true},
		{"abc", 0, true},
		{"10X", 0, true},
		{"K", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseHumanSize(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseHumanSize(%q) expected error, got %d", tt.input, result)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHumanSize(%q) unexpected error: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("ParseHumanSize(%q) = %d, want %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestDedupeRoots(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nested roots collapse",
			input:    []string{"/home/user/docs", "/home/user/docs/sub", "/home/user/photos"},
			expected: []string{"/home/user/docs", "/home/user/photos"},
		},
		{
			name:     "identical roots collapse",
			input:    []string{"/data", "/data"},
			expected: []string{"/data"},
		},
		{
			name:     "unsorted input comes back sorted",
			input:    []string{"/zebra", "/alpha"},
			expected: []string{"/alpha", "/zebra"},
		},
		{
			name:     "sibling prefix is not nesting",
			input:    []string{"/data", "/database"},
			expected: []string{"/data", "/database"},
		},
		{
			name:     "trailing slash cleaned before comparing",
			input:    []string{"/data/", "/data"},
			expected: []string{"/data"},
		},
		{
			name:     "empty input",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := dedupeRoots(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("dedupeRoots(%v) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsPathUnder(t *testing.T) {
	tests := []struct {
		path     string
		dir      string
		expected bool
	}{
		{"/a/b", "/a", true},
		{"/a/b/c", "/a", true},
		{"/a", "/a", false},
		{"/ab", "/a", false},
		{"/a", "/", true},
		{"/", "/", false},
		{"/other", "/a", false},
	}

	for _, tt := range tests {
		if result := isPathUnder(tt.path, tt.dir); result != tt.expected {
			t.Errorf("isPathUnder(%q, %q) = %t, want %t", tt.path, tt.dir, result, tt.expected)
		}
	}
}

func TestIsPathWithin(t *testing.T) {
	tests := []struct {
		path     string
		dir      string
		expected bool
	}{
		{"/a", "/a", true},
		{"/a/b", "/a", true},
		{"/ab", "/a", false},
		{"/", "/", true},
		{"/other", "/a", false},
	}

	for _, tt := range tests {
		if result := isPathWithin(tt.path, tt.dir); result != tt.expected {
			t.Errorf("isPathWithin(%q, %q) = %t, want %t", tt.path, tt.dir, result, tt.expected)
		}
	}
}
