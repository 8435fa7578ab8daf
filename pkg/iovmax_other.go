//go:build !linux

package dupetree

// maxWriteIovecs returns a conservative iovec batch size for platforms
// that do not expose their writev limit as a constant.
func maxWriteIovecs() int {
	return 1024
}
