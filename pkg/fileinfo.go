package dupetree

import (
	"encoding/json"
	"fmt"
	"math/big"
	"path/filepath"
)

// Hash128 is a 128-bit hash value split into two 64-bit halves.
// It is comparable, so it can be used directly as a map key.
type Hash128 struct {
	Hi uint64
	Lo uint64
}

// String renders the hash as a decimal 128-bit integer.
func (h Hash128) String() string {
	return h.bigInt().String()
}

// Hex renders the hash as a 32-character hex string.
func (h Hash128) Hex() string {
	return fmt.Sprintf("%016x%016x", h.Hi, h.Lo)
}

// MarshalJSON emits the hash as a bare decimal integer, which may exceed
// 64 bits. Absent hashes are represented by a nil *Hash128 field, which
// encoding/json renders as null.
func (h Hash128) MarshalJSON() ([]byte, error) {
	return []byte(h.bigInt().String()), nil
}

func (h Hash128) bigInt() *big.Int {
	v := new(big.Int).SetUint64(h.Hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(h.Lo))
}

// compareHash128 orders two hashes by their high half, then their low half.
func compareHash128(a, b Hash128) int {
	switch {
	case a.Hi < b.Hi:
		return -1
	case a.Hi > b.Hi:
		return 1
	case a.Lo < b.Lo:
		return -1
	case a.Lo > b.Lo:
		return 1
	default:
		return 0
	}
}

// HashState describes how much of a record's content has been hashed.
type HashState int

const (
	// LengthOnly means no hashing has been performed yet.
	LengthOnly HashState = iota
	// PartialKnown means only the leading block has been hashed.
	PartialKnown
	// FullKnown means the complete content hash is available.
	FullKnown
)

// FileRecord is a group of one or more paths believed to share identical
// content, together with the common byte length and whatever hashes have
// been computed so far. A live record always owns at least one path; a
// record emptied by a merge is discarded immediately.
type FileRecord struct {
	paths   []string
	length  uint64
	partial *Hash128
	full    *Hash128
}

// NewFileRecord creates a record for a single discovered file.
func NewFileRecord(path string, length uint64) *FileRecord {
	return &FileRecord{
		paths:  []string{path},
		length: length,
	}
}

// Paths returns every path in the record in merge order.
func (r *FileRecord) Paths() []string {
	return r.paths
}

// Length returns the byte length shared by all paths in the record.
func (r *FileRecord) Length() uint64 {
	return r.length
}

// PartialHash returns the leading-block hash if one has been computed.
func (r *FileRecord) PartialHash() (Hash128, bool) {
	if r.partial == nil {
		return Hash128{}, false
	}
	return *r.partial, true
}

// FullHash returns the whole-content hash if one has been computed.
func (r *FileRecord) FullHash() (Hash128, bool) {
	if r.full == nil {
		return Hash128{}, false
	}
	return *r.full, true
}

// CandidateName returns the basename of whichever path was recorded first.
// Traversal order is unordered, so the name can vary between runs.
func (r *FileRecord) CandidateName() string {
	if len(r.paths) == 0 {
		return ""
	}
	return filepath.Base(r.paths[0])
}

// State reports how far the record has progressed through staged hashing.
func (r *FileRecord) State() HashState {
	switch {
	case r.full != nil:
		return FullKnown
	case r.partial != nil:
		return PartialKnown
	default:
		return LengthOnly
	}
}

// Compare orders two records by full hash when both have one, else by
// partial hash when both have one, else by length. Records that have not
// been hashed yet therefore still sort deterministically.
func (r *FileRecord) Compare(other *FileRecord) int {
	if r.full != nil && other.full != nil {
		return compareHash128(*r.full, *other.full)
	}
	if r.partial != nil && other.partial != nil {
		return compareHash128(*r.partial, *other.partial)
	}
	switch {
	case r.length < other.length:
		return -1
	case r.length > other.length:
		return 1
	default:
		return 0
	}
}

// hashSignature is the consolidation key for a record: the exact pair of
// optional hashes with explicit presence flags. Two absent values never
// compare equal through this key because records missing either hash are
// never inserted into the consolidation map at all.
type hashSignature struct {
	partial    Hash128
	full       Hash128
	hasPartial bool
	hasFull    bool
}

func (r *FileRecord) signature() hashSignature {
	sig := hashSignature{}
	if r.partial != nil {
		sig.partial = *r.partial
		sig.hasPartial = true
	}
	if r.full != nil {
		sig.full = *r.full
		sig.hasFull = true
	}
	return sig
}

// mergeable reports whether the record completed every hashing stage and
// may therefore be compared against peers during consolidation. A record
// with an absent hash is quarantined and passes through as a singleton.
func (r *FileRecord) mergeable() bool {
	return r.partial != nil && r.full != nil && len(r.paths) > 0
}

// absorb moves every path from other into this record, leaving other
// empty so it is pruned by the consolidator.
func (r *FileRecord) absorb(other *FileRecord) {
	r.paths = append(r.paths, other.paths...)
	other.paths = nil
}

// promotePartialToFull copies the partial hash into the full-hash field.
// Used when the file length fits inside one partial block, so the leading
// block already covers the whole content and no second read is needed.
func (r *FileRecord) promotePartialToFull() {
	if r.partial == nil {
		return
	}
	full := *r.partial
	r.full = &full
}

func (r *FileRecord) firstPath() string {
	return r.paths[0]
}

// MarshalJSON serializes the record with nullable 128-bit hash integers,
// the unsigned length and the path list.
func (r *FileRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		PartialHash *Hash128 `json:"partial_hash"`
		FullHash    *Hash128 `json:"full_hash"`
		FileLength  uint64   `json:"file_length"`
		FilePaths   []string `json:"file_paths"`
	}{
		PartialHash: r.partial,
		FullHash:    r.full,
		FileLength:  r.length,
		FilePaths:   r.paths,
	})
}
