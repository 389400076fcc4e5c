// Package tui renders a sorting session and feeds keyboard input through
// the hold-confirm gate. It is presentation only: every state transition
// lives in the session engine.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"imgsieve/internal/input"
	"imgsieve/internal/session"
	"imgsieve/internal/tui/components"
	"imgsieve/internal/tui/themes"
)

// Config holds everything a sorting screen needs.
type Config struct {
	Queue   *session.Queue
	Gate    *session.Gate
	Keymap  input.Keymap
	Theme   themes.Theme
	Folders [3]string
}

// Model is the bubbletea model for one sorting session.
type Model struct {
	cfg        Config
	lastErr    error
	imagePanel components.ImagePanelModel
	statsPanel components.StatsPanelModel
	debouncer  input.Debouncer
	width      int
	height     int
	quitting   bool
}

func newModel(cfg Config) Model {
	if cfg.Keymap == nil {
		cfg.Keymap = input.DefaultKeymap()
	}
	m := Model{
		cfg:        cfg,
		imagePanel: components.NewImagePanelModel(cfg.Folders, cfg.Theme),
		statsPanel: components.NewStatsPanelModel(cfg.Folders, cfg.Theme),
	}
	m.refresh()
	return m
}

// Init starts the stats ticker.
func (m Model) Init() tea.Cmd {
	return statsTick()
}

// Update handles messages. All engine calls happen here, on bubbletea's
// single update goroutine, so input events reach the queue serialized.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.imagePanel.Resize(msg.Width)
		m.statsPanel.Resize(msg.Width)
		return m, nil

	case gateExpireMsg:
		m.cfg.Gate.Expire(msg.seq)
		m.refresh()
		return m, nil

	case flushMsg:
		if ev, ok := m.debouncer.Flush(msg.seq); ok {
			cmd := m.apply(ev)
			m.refresh()
			return m, cmd
		}
		return m, nil

	case statsTickMsg:
		m.refresh()
		return m, statsTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	intent, ok := m.cfg.Keymap.Lookup(msg.String())
	if !ok {
		return m, nil
	}

	events, seq := m.debouncer.Observe(intent)
	cmds := []tea.Cmd{flushAfter(seq)}
	for _, ev := range events {
		if cmd := m.apply(ev); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	m.refresh()
	return m, tea.Batch(cmds...)
}

// apply routes one normalized input event into the gate.
func (m *Model) apply(ev input.Event) tea.Cmd {
	if ev.Intent == input.IntentUndo {
		if ev.Kind == input.Press {
			m.recordErr(m.cfg.Gate.Undo())
		}
		return nil
	}

	label, ok := ev.Intent.Label()
	if !ok {
		return nil
	}

	switch ev.Kind {
	case input.Press:
		if seq, armed := m.cfg.Gate.Press(label); armed {
			return expireAfter(seq)
		}
	case input.Release:
		m.recordErr(m.cfg.Gate.Release(label))
	}
	return nil
}

// recordErr keeps the most recent engine error for the status line. A
// successful commit clears it.
func (m *Model) recordErr(err error) {
	m.lastErr = err
}

func (m *Model) refresh() {
	snap := m.cfg.Queue.Snapshot()
	m.imagePanel.SetImage(snap.Current)
	label, armed := m.cfg.Gate.Armed()
	m.imagePanel.SetArmed(label, armed)
	m.statsPanel.SetSnapshot(snap)
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	theme := m.cfg.Theme
	sections := []string{
		theme.Title.Render("imgsieve"),
		m.imagePanel.View(),
		m.statsPanel.View(),
	}

	if m.lastErr != nil {
		sections = append(sections, theme.ErrorText.Render(m.lastErr.Error()))
	}

	help := fmt.Sprintf("← %s · ↑ %s · → %s · ↓ undo · q quit  (tap to sort, hold to cancel)",
		m.cfg.Folders[0], m.cfg.Folders[1], m.cfg.Folders[2])
	sections = append(sections, theme.Help.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
