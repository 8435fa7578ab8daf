package dupetree

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ParseHumanSize parses human-readable size strings (e.g., "2M", "512k", "1G").
// Zero is accepted and means no minimum.
func ParseHumanSize(sizeStr string) (int64, error) {
	if sizeStr == "" {
		return 0, fmt.Errorf("empty size string")
	}

	// Convert to uppercase for consistent parsing
	sizeStr = strings.ToUpper(strings.TrimSpace(sizeStr))

	// Extract numeric part and suffix
	var numPart string
	var suffix string
	for i, char := range sizeStr {
		if char >= '0' && char <= '9' || char == '.' {
			numPart += string(char)
		} else {
			suffix = sizeStr[i:]
			break
		}
	}

	if numPart == "" {
		return 0, fmt.Errorf("no numeric part in size string: %s", sizeStr)
	}

	// Parse the numeric part
	num, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric part in size string %s: %w", sizeStr, err)
	}

	// Apply multiplier based on suffix
	var multiplier int64 = 1
	switch suffix {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	case "G", "GB":
		multiplier = 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unknown size suffix: %s", suffix)
	}

	result := int64(num * float64(multiplier))
	if result < 0 {
		return 0, fmt.Errorf("size must not be negative: %s", sizeStr)
	}

	return result, nil
}

// dedupeRoots removes duplicate and nested scan roots so no file is
// visited twice. Paths must already be absolute and symlink-resolved;
// survivors come back sorted.
func dedupeRoots(roots []string) []string {
	cleaned := make([]string, 0, len(roots))
	for _, root := range roots {
		cleaned = append(cleaned, filepath.Clean(root))
	}
	sort.Strings(cleaned)

	deduped := make([]string, 0, len(cleaned))
	for _, root := range cleaned {
		covered := false
		for _, kept := range deduped {
			if isPathWithin(root, kept) {
				covered = true
				break
			}
		}
		if !covered {
			deduped = append(deduped, root)
		}
	}
	return deduped
}

// isPathUnder reports whether path is strictly inside dir.
func isPathUnder(path, dir string) bool {
	if dir == string(filepath.Separator) {
		return path != dir && strings.HasPrefix(path, dir)
	}
	return strings.HasPrefix(path, dir+string(filepath.Separator))
}

// isPathWithin reports whether path equals dir or is inside it.
func isPathWithin(path, dir string) bool {
	return path == dir || isPathUnder(path, dir)
}
