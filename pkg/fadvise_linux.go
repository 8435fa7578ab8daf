//go:build linux

package dupetree

import (
	"os"

	"golang.org/x/sys/unix"
)

// adviseSequential hints the kernel that the file will be read
// sequentially from start to end, doubling the readahead window.
// The hint is advisory; failures are ignored.
func adviseSequential(file *os.File) {
	if !readaheadEnabled {
		return
	}
	unix.Fadvise(int(file.Fd()), 0, 0, unix.FADV_SEQUENTIAL)
}
