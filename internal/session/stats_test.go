package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"imgsieve/internal/model"
)

// fakeClock returns a now func that advances on demand.
func fakeClock(start time.Time) (now func() time.Time, advance func(time.Duration)) {
	current := start
	return func() time.Time { return current },
		func(d time.Duration) { current = current.Add(d) }
}

func TestStats_Conservation(t *testing.T) {
	now, _ := fakeClock(time.Unix(0, 0))
	s := NewStats([3]int{2, 0, 1}, 10, now)

	assert.Equal(t, 13, s.Total())
	assert.Equal(t, 3, s.Classified())
	assert.Equal(t, 10, s.Remaining())

	s.increment(model.LabelA)
	s.increment(model.LabelB)
	s.decrement(model.LabelB)

	// countA + countB + countUnknown + remaining == total holds throughout.
	assert.Equal(t, s.Total(), s.Classified()+s.Remaining())
	assert.Equal(t, 3, s.Count(model.LabelA))
	assert.Equal(t, 1, s.Count(model.LabelB))
	assert.Equal(t, 0, s.Count(model.LabelUnknown))
}

func TestStats_DecrementNeverGoesNegative(t *testing.T) {
	now, _ := fakeClock(time.Unix(0, 0))
	s := NewStats([3]int{}, 5, now)

	s.decrement(model.LabelA)
	assert.Equal(t, 0, s.Count(model.LabelA))
}

func TestStats_ETA(t *testing.T) {
	tests := []struct {
		name       string
		classified int
		pending    int
		elapsed    time.Duration
		wantETA    time.Duration
		wantKnown  bool
	}{
		{
			name:      "unknown before first classification",
			pending:   10,
			elapsed:   time.Minute,
			wantKnown: false,
		},
		{
			name:       "linear pace",
			classified: 5,
			pending:    10,
			elapsed:    50 * time.Second,
			wantETA:    100 * time.Second,
			wantKnown:  true,
		},
		{
			name:       "nothing remaining",
			classified: 4,
			pending:    0,
			elapsed:    20 * time.Second,
			wantETA:    0,
			wantKnown:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now, advance := fakeClock(time.Unix(0, 0))
			s := NewStats([3]int{}, tt.classified+tt.pending, now)
			for i := 0; i < tt.classified; i++ {
				s.increment(model.LabelA)
			}
			advance(tt.elapsed)

			eta, known := s.ETA()
			assert.Equal(t, tt.wantKnown, known)
			if tt.wantKnown {
				assert.Equal(t, tt.wantETA, eta)
			}
		})
	}
}

func TestStats_Summary(t *testing.T) {
	now, advance := fakeClock(time.Unix(0, 0))
	s := NewStats([3]int{}, 4, now)

	assert.Equal(t, "4/4 left  |  elapsed 00:00:00  |  ETA --:--:--", s.Summary())

	s.increment(model.LabelUnknown)
	advance(90 * time.Second)
	assert.Equal(t, "3/4 left  |  elapsed 00:01:30  |  ETA 00:04:30", s.Summary())
}
