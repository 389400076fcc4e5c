// Package service defines the interfaces between the engine and its
// collaborators.
package service

import (
	"context"

	"imgsieve/internal/model"
)

// History is the append-only classification audit trail. It is strictly
// write-through from the session's point of view: the engine never consults
// it to decide anything, because file location is the only persistence
// mechanism for classifications.
type History interface {
	// Append records one classify or undo commit.
	Append(ctx context.Context, entry *model.HistoryEntry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]model.HistoryEntry, error)

	// Sessions returns the distinct session IDs present in the log, newest
	// first.
	Sessions(ctx context.Context) ([]string, error)

	Close() error
}
