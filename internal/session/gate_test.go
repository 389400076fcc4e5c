package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgsieve/internal/model"
)

// recordingCommitter captures the calls the gate makes.
type recordingCommitter struct {
	classifyErr error
	classified  []model.Label
	undos       int
}

func (r *recordingCommitter) Classify(label model.Label) error {
	r.classified = append(r.classified, label)
	return r.classifyErr
}

func (r *recordingCommitter) Undo() error {
	r.undos++
	return nil
}

func TestGate_TapCommits(t *testing.T) {
	c := &recordingCommitter{}
	g := NewGate(c)

	_, armed := g.Press(model.LabelA)
	require.True(t, armed)
	require.NoError(t, g.Release(model.LabelA))

	// Released before the wake-up fired: exactly one classify.
	assert.Equal(t, []model.Label{model.LabelA}, c.classified)
	_, stillArmed := g.Armed()
	assert.False(t, stillArmed)
}

func TestGate_HoldPastThresholdCancels(t *testing.T) {
	c := &recordingCommitter{}
	g := NewGate(c)

	seq, _ := g.Press(model.LabelB)
	g.Expire(seq)
	require.NoError(t, g.Release(model.LabelB))

	// The wake-up fired first, so the release must not commit.
	assert.Empty(t, c.classified)
}

func TestGate_AutoRepeatDoesNotRearm(t *testing.T) {
	c := &recordingCommitter{}
	g := NewGate(c)

	seq, armed := g.Press(model.LabelA)
	require.True(t, armed)

	// Key-repeat presses while armed are ignored.
	repeatSeq, rearmed := g.Press(model.LabelA)
	assert.False(t, rearmed)
	assert.Equal(t, seq, repeatSeq)

	require.NoError(t, g.Release(model.LabelA))
	assert.Len(t, c.classified, 1)
}

func TestGate_StaleExpiryIgnored(t *testing.T) {
	c := &recordingCommitter{}
	g := NewGate(c)

	oldSeq, _ := g.Press(model.LabelA)
	require.NoError(t, g.Release(model.LabelA))

	// A fresh press supersedes the old wake-up.
	_, armed := g.Press(model.LabelB)
	require.True(t, armed)
	g.Expire(oldSeq)

	label, stillArmed := g.Armed()
	assert.True(t, stillArmed)
	assert.Equal(t, model.LabelB, label)

	require.NoError(t, g.Release(model.LabelB))
	assert.Equal(t, []model.Label{model.LabelA, model.LabelB}, c.classified)
}

func TestGate_StrayReleaseIgnored(t *testing.T) {
	c := &recordingCommitter{}
	g := NewGate(c)

	// Release with nothing armed.
	require.NoError(t, g.Release(model.LabelA))
	assert.Empty(t, c.classified)

	// Release of a label other than the armed one.
	_, _ = g.Press(model.LabelA)
	require.NoError(t, g.Release(model.LabelB))
	assert.Empty(t, c.classified)

	label, armed := g.Armed()
	assert.True(t, armed)
	assert.Equal(t, model.LabelA, label)
}

func TestGate_CommitErrorStillDisarms(t *testing.T) {
	c := &recordingCommitter{classifyErr: errors.New("destination file already exists")}
	g := NewGate(c)

	_, _ = g.Press(model.LabelA)
	err := g.Release(model.LabelA)

	// The error surfaces, and the gate returns to idle regardless.
	assert.Error(t, err)
	_, armed := g.Armed()
	assert.False(t, armed)
}

func TestGate_UndoIsOutOfBand(t *testing.T) {
	c := &recordingCommitter{}
	g := NewGate(c)

	_, _ = g.Press(model.LabelA)
	require.NoError(t, g.Undo())

	// Undo fires immediately and leaves the armed press untouched.
	assert.Equal(t, 1, c.undos)
	label, armed := g.Armed()
	assert.True(t, armed)
	assert.Equal(t, model.LabelA, label)

	require.NoError(t, g.Release(model.LabelA))
	assert.Len(t, c.classified, 1)
}
