//go:build !linux

package dupetree

import "os"

// adviseSequential is a no-op on platforms without posix_fadvise.
func adviseSequential(file *os.File) {
}
