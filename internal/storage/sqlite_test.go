package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgsieve/internal/model"
)

func newTestHistory(t *testing.T) *SQLiteHistory {
	t.Helper()
	s, err := NewSQLiteHistory(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func entry(session string, image string, action model.HistoryAction) *model.HistoryEntry {
	return &model.HistoryEntry{
		SessionID:   session,
		Image:       image,
		Label:       "Cats",
		Source:      "/pics/" + image,
		Destination: "/pics/Cats/" + image,
		Action:      action,
	}
}

func TestSQLiteHistory_AppendAndRecent(t *testing.T) {
	s := newTestHistory(t)
	ctx := context.Background()
	session := uuid.NewString()

	require.NoError(t, s.Append(ctx, entry(session, "img1.jpg", model.ActionClassify)))
	require.NoError(t, s.Append(ctx, entry(session, "img1.jpg", model.ActionUndo)))
	require.NoError(t, s.Append(ctx, entry(session, "img2.png", model.ActionClassify)))

	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first.
	assert.Equal(t, "img2.png", entries[0].Image)
	assert.Equal(t, model.ActionClassify, entries[0].Action)
	assert.Equal(t, model.ActionUndo, entries[1].Action)
	assert.Equal(t, session, entries[2].SessionID)
	assert.False(t, entries[0].RecordedAt.IsZero())
}

func TestSQLiteHistory_RecentLimit(t *testing.T) {
	s := newTestHistory(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Append(ctx, entry("s", "img.jpg", model.ActionClassify)))
	}

	entries, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSQLiteHistory_RecentEmpty(t *testing.T) {
	s := newTestHistory(t)

	entries, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSQLiteHistory_Sessions(t *testing.T) {
	s := newTestHistory(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, entry("first", "a.jpg", model.ActionClassify)))
	require.NoError(t, s.Append(ctx, entry("second", "b.jpg", model.ActionClassify)))
	require.NoError(t, s.Append(ctx, entry("first", "c.jpg", model.ActionClassify)))

	ids, err := s.Sessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, ids)
}

func TestSQLiteHistory_AppendValidation(t *testing.T) {
	s := newTestHistory(t)

	assert.Error(t, s.Append(context.Background(), nil))
}

func TestSQLiteHistory_PreservesRecordedAt(t *testing.T) {
	s := newTestHistory(t)
	ctx := context.Background()

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e := entry("s", "img.jpg", model.ActionClassify)
	e.RecordedAt = at
	require.NoError(t, s.Append(ctx, e))

	entries, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].RecordedAt.Equal(at))
}
