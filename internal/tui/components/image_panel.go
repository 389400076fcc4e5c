// Package components holds the reusable pieces of the sorting screen.
package components

import (
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"imgsieve/internal/model"
	"imgsieve/internal/tui/themes"
)

// ImagePanelModel shows the current image and the three label buttons,
// highlighting the armed one.
type ImagePanelModel struct {
	theme   themes.Theme
	path    string
	folders [3]string
	armed   model.Label
	isArmed bool
	width   int
}

// NewImagePanelModel creates the panel with the configured label folder
// names as button captions.
func NewImagePanelModel(folders [3]string, theme themes.Theme) ImagePanelModel {
	return ImagePanelModel{theme: theme, folders: folders}
}

// SetImage updates the displayed image path.
func (m *ImagePanelModel) SetImage(path string) {
	m.path = path
}

// SetArmed updates the highlight state from the gate.
func (m *ImagePanelModel) SetArmed(label model.Label, armed bool) {
	m.armed = label
	m.isArmed = armed
}

// Resize adapts the panel to the terminal width.
func (m *ImagePanelModel) Resize(width int) {
	m.width = width
}

// View renders the panel.
func (m ImagePanelModel) View() string {
	name := "(all sorted)"
	dir := ""
	if m.path != "" {
		name = filepath.Base(m.path)
		dir = filepath.Dir(m.path)
	}

	current := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render(name),
		m.theme.Subtitle.Render(dir),
	)

	box := m.theme.PanelBox
	if m.width > 8 {
		box = box.Width(m.width - 4)
	}

	return lipgloss.JoinVertical(
		lipgloss.Center,
		box.Render(current),
		m.renderButtons(),
	)
}

func (m ImagePanelModel) renderButtons() string {
	buttons := make([]string, 0, 3)
	for slot, caption := range m.folders {
		style := m.theme.Button
		if m.isArmed && int(m.armed) == slot {
			style = m.theme.Armed(slot)
		}
		buttons = append(buttons, style.Render(caption))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, buttons...)
}
