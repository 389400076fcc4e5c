package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"imgsieve/internal/session"
	"imgsieve/internal/tui/themes"
)

// StatsPanelModel displays the session counters, progress, and ETA.
type StatsPanelModel struct {
	theme       themes.Theme
	folders     [3]string
	snapshot    session.Snapshot
	progressBar progress.Model
	width       int
}

// NewStatsPanelModel creates a new stats panel.
func NewStatsPanelModel(folders [3]string, theme themes.Theme) StatsPanelModel {
	prog := progress.New(progress.WithDefaultGradient())
	prog.ShowPercentage = false

	return StatsPanelModel{
		theme:       theme,
		folders:     folders,
		progressBar: prog,
	}
}

// SetSnapshot replaces the displayed state.
func (m *StatsPanelModel) SetSnapshot(snap session.Snapshot) {
	m.snapshot = snap
}

// Resize adapts the panel to the terminal width.
func (m *StatsPanelModel) Resize(width int) {
	m.width = width
	m.progressBar.Width = min(width-4, 48)
}

// View renders the panel.
func (m StatsPanelModel) View() string {
	snap := m.snapshot

	counts := fmt.Sprintf("%s %s   %s %s   %s %s",
		m.theme.Subtitle.Render(m.folders[0]),
		m.theme.CountStyle.Render(fmt.Sprintf("%d", snap.CountA)),
		m.theme.Subtitle.Render(m.folders[1]),
		m.theme.CountStyle.Render(fmt.Sprintf("%d", snap.CountUnknown)),
		m.theme.Subtitle.Render(m.folders[2]),
		m.theme.CountStyle.Render(fmt.Sprintf("%d", snap.CountB)),
	)

	var fraction float64
	if snap.Total > 0 {
		fraction = float64(snap.Total-snap.Remaining) / float64(snap.Total)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		counts,
		m.progressBar.ViewAs(fraction),
		m.theme.Subtitle.Render(snap.Summary),
	)
}
