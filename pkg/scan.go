package dupetree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// ============================================================================
// TYPE DEFINITIONS
// ============================================================================

// maxScanWorkers caps the traversal pool; beyond this the walk is
// seek-bound, not CPU-bound.
const maxScanWorkers = 64

// ErrSymlinkSkipped marks an outcome for a symbolic link below a scan
// root. Links are never followed during traversal, only reported.
var ErrSymlinkSkipped = errors.New("symbolic link skipped")

// ScanError describes a single path the walk could not process. It
// wraps the underlying cause so callers can test with errors.Is.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// ScanOutcome is what the walk emits for each relevant directory entry:
// either a candidate file record or an error for a path that produced
// none. Exactly one of the fields is set.
type ScanOutcome struct {
	Record *FileRecord
	Err    *ScanError
}

// ScanOptions controls a tree walk.
type ScanOptions struct {
	MinSize    int64    // files smaller than this are silently dropped
	IgnoreDirs []string // subtrees to prune, matched by canonical prefix
	Workers    int      // traversal goroutines; <= 0 picks a default
	Stats      *Stats   // optional live counters, may be nil
}

// ============================================================================
// WORK QUEUE
// ============================================================================

// scanQueue is the shared worklist of directories still to visit.
// pending counts paths that are queued or currently being processed;
// the walk is finished when it reaches zero, because new paths are only
// ever pushed by a worker that still holds a pending slot.
type scanQueue struct {
	mu      sync.Mutex
	ready   *sync.Cond
	items   []string
	pending int
}

func newScanQueue() *scanQueue {
	q := &scanQueue{}
	q.ready = sync.NewCond(&q.mu)
	return q
}

func (q *scanQueue) push(path string) {
	q.mu.Lock()
	q.items = append(q.items, path)
	q.pending++
	q.mu.Unlock()
	q.ready.Signal()
}

// pop blocks until a path is available or the walk has drained. The
// second result is false only when no paths remain and none are in
// flight, which is the workers' signal to exit.
func (q *scanQueue) pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && q.pending > 0 {
		q.ready.Wait()
	}
	if len(q.items) == 0 {
		return "", false
	}
	path := q.items[len(q.items)-1]
	q.items = q.items[:len(q.items)-1]
	return path, true
}

// done releases the pending slot taken by pop. Must be called exactly
// once per successful pop, after any child paths have been pushed.
func (q *scanQueue) done() {
	q.mu.Lock()
	q.pending--
	drained := q.pending == 0
	q.mu.Unlock()
	if drained {
		q.ready.Broadcast()
	}
}

// ============================================================================
// TREE TRAVERSAL
// ============================================================================

// treeScanner carries the shared state of one walk.
type treeScanner struct {
	queue    *scanQueue
	outcomes chan<- ScanOutcome
	minSize  int64
	ignores  []string
	stats    *Stats
}

// ScanTree walks the given roots and delivers one outcome per relevant
// directory entry on the outcomes channel, closing it when the walk
// finishes. Roots are symlink-resolved and deduplicated first, so every
// path a worker visits is canonical by construction. Symbolic links
// below a root are reported and never followed; files below the size
// floor and non-regular entries are dropped without an outcome.
func ScanTree(roots []string, opts ScanOptions, outcomes chan<- ScanOutcome) {
	defer close(outcomes)

	scanner := &treeScanner{
		queue:    newScanQueue(),
		outcomes: outcomes,
		minSize:  opts.MinSize,
		ignores:  canonicalizeIgnores(opts.IgnoreDirs),
		stats:    opts.Stats,
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = defaultScanWorkers()
	}

	scanner.run(roots, workers)
}

// run canonicalizes the roots, seeds the queue and drives the worker
// pool to completion.
func (s *treeScanner) run(roots []string, workers int) {
	var canonical []string
	for _, root := range roots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			s.emitError(root, err)
			continue
		}
		resolved, err := filepath.EvalSymlinks(absRoot)
		if err != nil {
			s.emitError(absRoot, err)
			continue
		}
		canonical = append(canonical, resolved)
	}

	deduped := dedupeRoots(canonical)
	if IsDebugEnabled("scan") {
		VerboseLog(3, "scanning roots %v with %d workers", deduped, workers)
	}

	for _, root := range deduped {
		if s.ignored(root) {
			continue
		}
		s.queue.push(root)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker()
		}()
	}
	wg.Wait()
}

func (s *treeScanner) worker() {
	for {
		path, ok := s.queue.pop()
		if !ok {
			return
		}
		s.scanEntry(path)
		s.queue.done()
	}
}

// scanEntry classifies one queued path. Queued paths are directories
// except for the roots themselves, which may be plain files.
func (s *treeScanner) scanEntry(path string) {
	info, err := os.Lstat(path)
	if err != nil {
		s.emitError(path, err)
		return
	}

	if info.Mode()&os.ModeSymlink != 0 {
		s.emitError(path, ErrSymlinkSkipped)
		return
	}

	if info.IsDir() {
		s.scanDir(path)
		return
	}

	if info.Mode().IsRegular() {
		s.recordFile(path, info.Size())
	}
}

// scanDir lists one directory, queueing subdirectories and recording
// candidate files inline. Sockets, fifos and device nodes produce no
// outcome.
func (s *treeScanner) scanDir(path string) {
	s.stats.addDirWalked()

	entries, err := os.ReadDir(path)
	if err != nil {
		s.emitError(path, err)
		return
	}

	for _, entry := range entries {
		childPath := filepath.Join(path, entry.Name())
		if s.ignored(childPath) {
			continue
		}

		switch {
		case entry.IsDir():
			s.queue.push(childPath)
		case entry.Type()&os.ModeSymlink != 0:
			s.emitError(childPath, ErrSymlinkSkipped)
		case entry.Type().IsRegular():
			info, err := entry.Info()
			if err != nil {
				s.emitError(childPath, err)
				continue
			}
			s.recordFile(childPath, info.Size())
		}
	}
}

// recordFile emits a length-only record for a regular file at or above
// the size floor.
func (s *treeScanner) recordFile(path string, size int64) {
	if size < s.minSize {
		if IsDebugEnabled("scan") {
			VerboseLog(3, "skipping undersized file %s (%d bytes)", path, size)
		}
		return
	}
	s.stats.addFileDiscovered()
	s.outcomes <- ScanOutcome{Record: NewFileRecord(path, uint64(size))}
}

// emitError reports a path that produced no candidate record.
func (s *treeScanner) emitError(path string, err error) {
	s.stats.addError()
	s.outcomes <- ScanOutcome{Err: &ScanError{Path: path, Err: err}}
}

// ignored reports whether path falls under any ignore prefix.
func (s *treeScanner) ignored(path string) bool {
	for _, dir := range s.ignores {
		if isPathWithin(path, dir) {
			return true
		}
	}
	return false
}

// canonicalizeIgnores resolves ignore prefixes the same way scan roots
// are resolved, so prefix matching works against canonical walk paths.
// Prefixes that cannot be resolved are kept in cleaned absolute form;
// they simply never match.
func canonicalizeIgnores(dirs []string) []string {
	var canonical []string
	for _, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		resolved, err := filepath.EvalSymlinks(abs)
		if err != nil {
			resolved = filepath.Clean(abs)
		}
		canonical = append(canonical, resolved)
	}
	return canonical
}

// defaultScanWorkers sizes the pool for a mixed stat/readdir workload,
// which benefits from oversubscription on rotating and network storage.
func defaultScanWorkers() int {
	workers := runtime.NumCPU() * 4
	if workers > maxScanWorkers {
		workers = maxScanWorkers
	}
	return workers
}
