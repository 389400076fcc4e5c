package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgsieve/internal/model"
)

func TestIntent_Label(t *testing.T) {
	tests := []struct {
		name   string
		intent Intent
		want   model.Label
		wantOK bool
	}{
		{name: "a", intent: IntentA, want: model.LabelA, wantOK: true},
		{name: "unknown", intent: IntentUnknown, want: model.LabelUnknown, wantOK: true},
		{name: "b", intent: IntentB, want: model.LabelB, wantOK: true},
		{name: "undo has no label", intent: IntentUndo, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, ok := tt.intent.Label()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, label)
			}
		})
	}
}

func TestKeymap_Lookup(t *testing.T) {
	km := DefaultKeymap()

	intent, ok := km.Lookup("left")
	require.True(t, ok)
	assert.Equal(t, IntentA, intent)

	_, ok = km.Lookup("x")
	assert.False(t, ok)
}

func TestFromConfig(t *testing.T) {
	km, err := FromConfig(map[string]string{"j": "undo", "k": "skip"})
	require.NoError(t, err)

	intent, ok := km.Lookup("j")
	require.True(t, ok)
	assert.Equal(t, IntentUndo, intent)

	intent, ok = km.Lookup("k")
	require.True(t, ok)
	assert.Equal(t, IntentUnknown, intent)

	// Defaults survive a partial override.
	intent, ok = km.Lookup("left")
	require.True(t, ok)
	assert.Equal(t, IntentA, intent)

	_, err = FromConfig(map[string]string{"x": "bogus"})
	assert.Error(t, err)
}

func TestDebouncer_TapEmitsPressThenRelease(t *testing.T) {
	var d Debouncer

	events, seq := d.Observe(IntentA)
	require.Equal(t, []Event{{Kind: Press, Intent: IntentA}}, events)

	ev, ok := d.Flush(seq)
	require.True(t, ok)
	assert.Equal(t, Event{Kind: Release, Intent: IntentA}, ev)
}

func TestDebouncer_RepeatsDeferRelease(t *testing.T) {
	var d Debouncer

	_, seq1 := d.Observe(IntentB)
	events, seq2 := d.Observe(IntentB)
	assert.Empty(t, events, "auto-repeat must not emit a second press")

	// The earlier flush was superseded by the repeat.
	_, ok := d.Flush(seq1)
	assert.False(t, ok)

	ev, ok := d.Flush(seq2)
	require.True(t, ok)
	assert.Equal(t, Event{Kind: Release, Intent: IntentB}, ev)

	// The key is no longer held; the same flush cannot fire twice.
	_, ok = d.Flush(seq2)
	assert.False(t, ok)
}

func TestDebouncer_NewKeyClosesOutHeldKey(t *testing.T) {
	var d Debouncer

	_, _ = d.Observe(IntentA)
	events, seq := d.Observe(IntentB)

	require.Equal(t, []Event{
		{Kind: Release, Intent: IntentA},
		{Kind: Press, Intent: IntentB},
	}, events)

	ev, ok := d.Flush(seq)
	require.True(t, ok)
	assert.Equal(t, Event{Kind: Release, Intent: IntentB}, ev)
}
