package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"imgsieve/internal/input"
	"imgsieve/internal/session"
)

// expireAfter schedules the gate's hold-threshold wake-up. Only one is
// logically live: the gate ignores stale sequences.
func expireAfter(seq int) tea.Cmd {
	return tea.Tick(session.HoldThreshold, func(time.Time) tea.Msg {
		return gateExpireMsg{seq: seq}
	})
}

// flushAfter schedules the debouncer's release detection.
func flushAfter(seq int) tea.Cmd {
	return tea.Tick(input.DebounceWindow, func(time.Time) tea.Msg {
		return flushMsg{seq: seq}
	})
}

// statsTick refreshes elapsed/ETA once a second.
func statsTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return statsTickMsg(t)
	})
}
