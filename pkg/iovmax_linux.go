//go:build linux

package dupetree

// uioMaxIov mirrors the kernel's UIO_MAXIOV (include/uapi/linux/uio.h),
// which golang.org/x/sys/unix does not export.
const uioMaxIov = 1024

// maxWriteIovecs returns the largest iovec batch a single writev call
// accepts on this platform.
func maxWriteIovecs() int {
	return uioMaxIov
}
