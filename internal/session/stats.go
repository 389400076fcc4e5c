package session

import (
	"fmt"
	"time"

	"imgsieve/internal/model"
)

// Stats tracks the per-label counters and timing for one session. It has no
// side effects; the queue is its only mutator.
type Stats struct {
	now       func() time.Time
	startTime time.Time
	counts    [3]int
	total     int
}

// NewStats creates a Stats with the given per-label seed counts (images
// already present in the label folders) and the number of pending images.
// The session total is fixed here and never changes.
func NewStats(seeded [3]int, pending int, now func() time.Time) *Stats {
	if now == nil {
		now = time.Now
	}
	total := pending
	for _, n := range seeded {
		total += n
	}
	return &Stats{
		now:       now,
		startTime: now(),
		counts:    seeded,
		total:     total,
	}
}

// Count returns the counter for a single label.
func (s *Stats) Count(label model.Label) int {
	return s.counts[label]
}

// Classified returns the sum of all label counters.
func (s *Stats) Classified() int {
	return s.counts[0] + s.counts[1] + s.counts[2]
}

// Total returns the fixed session total.
func (s *Stats) Total() int {
	return s.total
}

// Remaining returns how many images are still unclassified.
func (s *Stats) Remaining() int {
	return s.total - s.Classified()
}

// Elapsed returns the wall-clock time since the session started.
func (s *Stats) Elapsed() time.Duration {
	return s.now().Sub(s.startTime)
}

// ETA estimates the remaining time from the pace so far. ok is false when
// nothing has been classified yet and no estimate exists.
func (s *Stats) ETA() (eta time.Duration, ok bool) {
	classified := s.Classified()
	if classified == 0 {
		return 0, false
	}
	perImage := s.Elapsed() / time.Duration(classified)
	return perImage * time.Duration(s.Remaining()), true
}

// Summary renders the one-line status shown in the header:
// "12/40 left | elapsed 00:03:21 | ETA 00:09:48".
func (s *Stats) Summary() string {
	eta := "--:--:--"
	if d, ok := s.ETA(); ok {
		eta = formatHMS(d)
	}
	return fmt.Sprintf("%d/%d left  |  elapsed %s  |  ETA %s",
		s.Remaining(), s.total, formatHMS(s.Elapsed()), eta)
}

func (s *Stats) increment(label model.Label) {
	s.counts[label]++
}

func (s *Stats) decrement(label model.Label) {
	if s.counts[label] > 0 {
		s.counts[label]--
	}
}

func formatHMS(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}
