package dupetree

import (
	"fmt"
	"os"
	"syscall"

	"github.com/google/vectorio"
)

// WriteReport writes rendered report segments to path using vectored
// writes, batching iovecs to respect the platform IOV_MAX limit. The
// target is created or truncated and synced to disk before returning.
func WriteReport(path string, segments [][]byte) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create report file %s: %w", path, err)
	}
	defer file.Close()

	var iovecs []syscall.Iovec
	totalSize := 0
	for i := range segments {
		if len(segments[i]) == 0 {
			continue
		}
		iovecs = append(iovecs, syscall.Iovec{
			Base: &segments[i][0],
			Len:  uint64(len(segments[i])),
		})
		totalSize += len(segments[i])
	}

	if len(iovecs) > 0 {
		maxIovecs := maxWriteIovecs()
		totalWritten := 0

		for offset := 0; offset < len(iovecs); offset += maxIovecs {
			end := offset + maxIovecs
			if end > len(iovecs) {
				end = len(iovecs)
			}

			// Use slice without copying to avoid allocation
			chunk := iovecs[offset:end]

			if nw, err := vectorio.WritevRaw(uintptr(file.Fd()), chunk); err != nil {
				return fmt.Errorf("failed to write report chunk: %w", err)
			} else {
				totalWritten += nw
			}
		}

		if totalWritten != totalSize {
			return fmt.Errorf("report write incomplete: wrote %d bytes, expected %d", totalWritten, totalSize)
		}
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync report file %s: %w", path, err)
	}

	return nil
}
