// Package model defines the core domain types shared across the application.
package model

import "time"

// Label is one of the three classification outcomes for an image.
type Label int

const (
	// LabelA is the first labeled category (left button).
	LabelA Label = iota
	// LabelUnknown is the skip/unsure bucket (middle button).
	LabelUnknown
	// LabelB is the second labeled category (right button).
	LabelB
)

// String returns the canonical config key for the label.
func (l Label) String() string {
	switch l {
	case LabelA:
		return "a"
	case LabelUnknown:
		return "unknown"
	case LabelB:
		return "b"
	default:
		return "invalid"
	}
}

// Valid reports whether l is one of the three defined labels.
func (l Label) Valid() bool {
	return l == LabelA || l == LabelUnknown || l == LabelB
}

// ImageRecord represents a single image tracked by a sorting session.
// Path is the absolute location of the file; it changes when the image
// is classified (moved into a label folder) and changes back on undo.
type ImageRecord struct {
	Path  string
	Label *Label // nil until classified
}

// Name returns the base filename of the record.
func (r ImageRecord) Name() string {
	for i := len(r.Path) - 1; i >= 0; i-- {
		if r.Path[i] == '/' || r.Path[i] == '\\' {
			return r.Path[i+1:]
		}
	}
	return r.Path
}

// HistoryAction distinguishes the two events recorded in the history log.
type HistoryAction string

const (
	// ActionClassify records a committed classification.
	ActionClassify HistoryAction = "classify"
	// ActionUndo records a reverted classification.
	ActionUndo HistoryAction = "undo"
)

// HistoryEntry is one row of the classification audit trail. The engine
// never reads these back; the file system remains the source of truth.
type HistoryEntry struct {
	RecordedAt  time.Time
	SessionID   string
	Image       string
	Label       string
	Source      string
	Destination string
	Action      HistoryAction
	ID          int64
}
