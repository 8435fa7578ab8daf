package dupetree

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/dchest/siphash"
)

// HashBlockSize is the number of leading bytes covered by a partial hash,
// and the chunk size used when streaming a full hash. The block is kept
// large enough to trigger filesystem readahead and keep syscall counts
// low, and small enough to bound the wasted read for unique files.
const HashBlockSize = 16 * 1024

// sipKey is the fixed SipHash-2-4 key. The hash is a content
// discriminator, not an authenticator, so a constant key is fine.
var sipKey [16]byte

// readaheadEnabled gates the sequential-read hint issued before full-file
// hashing. Set once from configuration before the pipeline starts.
var readaheadEnabled = true

// SetReadahead enables or disables the kernel readahead hint for
// whole-file hashing.
func SetReadahead(enabled bool) {
	readaheadEnabled = enabled
}

// PartialHashFile hashes exactly one leading block of the file at path.
// At most HashBlockSize bytes are read; shorter files are hashed whole.
func PartialHashFile(path string, stats *Stats) (Hash128, error) {
	file, err := os.Open(path)
	if err != nil {
		return Hash128{}, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	buffer := make([]byte, HashBlockSize)
	n, err := io.ReadFull(file, buffer)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Hash128{}, fmt.Errorf("failed to read leading block of %s: %w", path, err)
	}
	stats.addBytesRead(int64(n))

	hasher := siphash.New128(sipKey[:])
	hasher.Write(buffer[:n])
	return sumToHash128(hasher.Sum(nil)), nil
}

// FullHashFile hashes the complete contents of the file at path,
// streaming it in HashBlockSize chunks.
func FullHashFile(path string, stats *Stats) (Hash128, error) {
	file, err := os.Open(path)
	if err != nil {
		return Hash128{}, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	adviseSequential(file)

	hasher := siphash.New128(sipKey[:])
	buffer := make([]byte, HashBlockSize)
	for {
		n, err := file.Read(buffer)
		if n > 0 {
			hasher.Write(buffer[:n])
			stats.addBytesRead(int64(n))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Hash128{}, fmt.Errorf("failed to read from file %s: %w", path, err)
		}
	}

	return sumToHash128(hasher.Sum(nil)), nil
}

// sumToHash128 splits a 16-byte SipHash digest into two 64-bit halves.
func sumToHash128(digest []byte) Hash128 {
	return Hash128{
		Hi: binary.LittleEndian.Uint64(digest[0:8]),
		Lo: binary.LittleEndian.Uint64(digest[8:16]),
	}
}

// HashPartial computes the leading-block hash and stores it on the
// record. A read failure leaves the hash absent, which quarantines the
// record from merging; it is not reported as a pipeline error.
func (r *FileRecord) HashPartial(stats *Stats) {
	hash, err := PartialHashFile(r.firstPath(), stats)
	if err != nil {
		r.partial = nil
		stats.addHashFailure()
		if IsDebugEnabled("hash") {
			VerboseLog(2, "partial hash failed for %s: %v", r.firstPath(), err)
		}
		return
	}
	r.partial = &hash
	stats.addPartialHashed()
}

// HashFull computes the whole-content hash and stores it on the record.
// A read failure leaves the hash absent, which quarantines the record
// from merging; it is not reported as a pipeline error.
func (r *FileRecord) HashFull(stats *Stats) {
	hash, err := FullHashFile(r.firstPath(), stats)
	if err != nil {
		r.full = nil
		stats.addHashFailure()
		if IsDebugEnabled("hash") {
			VerboseLog(2, "full hash failed for %s: %v", r.firstPath(), err)
		}
		return
	}
	r.full = &hash
	stats.addFullHashed()
}
