package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"imgsieve/internal/model"
)

// imageExtensions is the fixed allow-list of raster formats the scanner
// accepts. Matching is case-insensitive.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
}

// Config holds the immutable settings a queue is constructed with.
type Config struct {
	// BaseDir is the directory holding the unsorted images.
	BaseDir string
	// LabelFolders maps each label to its folder name under BaseDir,
	// indexed by model.Label.
	LabelFolders [3]string
	// RenameOnConflict resolves destination filename collisions with a
	// numeric suffix instead of failing.
	RenameOnConflict bool
}

// undoRecord remembers everything needed to revert one classification.
type undoRecord struct {
	from  string
	to    string
	label model.Label
}

// CommitHook observes successful classify and undo commits, e.g. to append
// them to the history log. The engine never reads anything back through it.
type CommitHook func(entry model.HistoryEntry)

// Queue owns the pending image sequence, the one-level undo history, and the
// session stats. All mutations happen through Classify, Undo, and Next, which
// serialize callers with an internal mutex so bubbletea command goroutines
// can call in directly.
type Queue struct {
	mu      sync.Mutex
	cfg     Config
	pending []model.ImageRecord
	history []undoRecord
	stats   *Stats
	mover   Mover
	hook    CommitHook
	now     func() time.Time
}

// Option customizes queue construction.
type Option func(*Queue)

// WithMover replaces the disk-backed mover, for tests.
func WithMover(m Mover) Option {
	return func(q *Queue) { q.mover = m }
}

// WithClock replaces the stats clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) { q.now = now }
}

// WithCommitHook registers a hook invoked after every successful classify
// and undo.
func WithCommitHook(hook CommitHook) Option {
	return func(q *Queue) { q.hook = hook }
}

// NewQueue scans cfg.BaseDir non-recursively for qualifying images and
// builds a ready session. Subdirectories are considered already classified
// and are never enqueued. Returns ErrEmptyDataset when the scan finds
// nothing to sort.
func NewQueue(cfg Config, opts ...Option) (*Queue, error) {
	q := &Queue{
		cfg:   cfg,
		mover: &FileMover{RenameOnConflict: cfg.RenameOnConflict},
	}
	for _, opt := range opts {
		opt(q)
	}

	paths, err := scanImages(cfg.BaseDir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDataset, cfg.BaseDir)
	}

	q.pending = make([]model.ImageRecord, 0, len(paths))
	for _, p := range paths {
		q.pending = append(q.pending, model.ImageRecord{Path: p})
	}

	// Seed counters from images already sitting in the label folders, so a
	// resumed directory shows true progress.
	var seeded [3]int
	for label, folder := range cfg.LabelFolders {
		counted, scanErr := scanImages(filepath.Join(cfg.BaseDir, folder))
		if scanErr != nil {
			continue
		}
		seeded[label] = len(counted)
	}
	q.stats = NewStats(seeded, len(q.pending), q.now)

	return q, nil
}

// scanImages lists qualifying image files directly inside dir, sorted
// lexicographically by name. A missing dir is an error; dotfiles and
// subdirectories are skipped.
func scanImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Current returns the head of the pending sequence. ok is false once the
// queue is exhausted.
func (q *Queue) Current() (rec model.ImageRecord, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return model.ImageRecord{}, false
	}
	return q.pending[0], true
}

// Classify moves the current image into its label folder, updates the
// counters, and records a one-level undo entry. On any move failure the
// in-memory state is untouched, so the operation is safely retryable and
// the current image stays current.
func (q *Queue) Classify(label model.Label) error {
	if !label.Valid() {
		return fmt.Errorf("invalid label %d", label)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return ErrNoCurrent
	}

	cur := q.pending[0]
	destDir := filepath.Join(q.cfg.BaseDir, q.cfg.LabelFolders[label])
	dest, err := q.mover.Move(cur.Path, destDir)
	if err != nil {
		return err
	}

	q.history = []undoRecord{{from: cur.Path, to: dest, label: label}}
	q.stats.increment(label)
	q.pending = q.pending[1:]

	q.emit(model.HistoryEntry{
		Image:       filepath.Base(cur.Path),
		Label:       q.cfg.LabelFolders[label],
		Source:      cur.Path,
		Destination: dest,
		Action:      model.ActionClassify,
	})
	return nil
}

// Undo reverts the most recent classification: the file moves back to its
// original location and the record reappears at the front of the pending
// sequence. With nothing to undo it is a silent no-op; only one level is
// kept, so a second consecutive call does nothing until the next classify.
func (q *Queue) Undo() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.history) == 0 {
		return nil
	}

	rec := q.history[len(q.history)-1]
	if err := q.mover.MoveTo(rec.to, rec.from); err != nil {
		return err
	}

	q.history = nil
	q.stats.decrement(rec.label)
	q.pending = append([]model.ImageRecord{{Path: rec.from}}, q.pending...)

	q.emit(model.HistoryEntry{
		Image:       filepath.Base(rec.from),
		Label:       q.cfg.LabelFolders[rec.label],
		Source:      rec.to,
		Destination: rec.from,
		Action:      model.ActionUndo,
	})
	return nil
}

// Next rotates the current image to the back of the pending sequence
// without classifying it. Stats and undo history are untouched, and the
// rotation itself is not undoable.
func (q *Queue) Next() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) > 1 {
		head := q.pending[0]
		q.pending = append(q.pending[1:], head)
	}
}

// CanUndo reports whether an undo record is available.
func (q *Queue) CanUndo() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.history) > 0
}

// LabelFolder returns the folder name configured for a label.
func (q *Queue) LabelFolder(label model.Label) string {
	return q.cfg.LabelFolders[label]
}

// Snapshot is the read-only view the presentation layer renders from.
type Snapshot struct {
	Current      string
	Summary      string
	CountA       int
	CountUnknown int
	CountB       int
	Remaining    int
	Total        int
	Elapsed      time.Duration
	ETA          time.Duration
	ETAKnown     bool
	CanUndo      bool
}

// Snapshot captures the observable session state at one instant.
func (q *Queue) Snapshot() Snapshot {
	q.mu.Lock()
	defer q.mu.Unlock()

	var current string
	if len(q.pending) > 0 {
		current = q.pending[0].Path
	}
	eta, etaKnown := q.stats.ETA()
	return Snapshot{
		Current:      current,
		Summary:      q.stats.Summary(),
		CountA:       q.stats.Count(model.LabelA),
		CountUnknown: q.stats.Count(model.LabelUnknown),
		CountB:       q.stats.Count(model.LabelB),
		Remaining:    q.stats.Remaining(),
		Total:        q.stats.Total(),
		Elapsed:      q.stats.Elapsed(),
		ETA:          eta,
		ETAKnown:     etaKnown,
		CanUndo:      len(q.history) > 0,
	}
}

func (q *Queue) emit(entry model.HistoryEntry) {
	if q.hook != nil {
		q.hook(entry)
	}
}
