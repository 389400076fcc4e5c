// Package session implements the classification session engine: the pending
// image queue, the move/undo state transitions, the hold-to-confirm input
// gate, and the running statistics for one sorting run.
package session

import "errors"

// Engine errors. Filesystem failures during a move are wrapped os errors and
// can be inspected with errors.Is/As; the two conditions the presentation
// layer must distinguish get sentinels.
var (
	// ErrEmptyDataset means the scan found no qualifying images, so the
	// session cannot proceed.
	ErrEmptyDataset = errors.New("no qualifying images in base directory")

	// ErrMoveConflict means a file with the same name already exists at the
	// destination. The current image stays current and unclassified; the
	// engine never silently overwrites.
	ErrMoveConflict = errors.New("destination file already exists")

	// ErrNoCurrent means classify was called on an exhausted queue.
	ErrNoCurrent = errors.New("no current image")
)
