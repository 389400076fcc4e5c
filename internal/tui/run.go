package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// RunSession runs the sorting screen until the user quits or ctx is
// cancelled, and returns the final session summary line.
func RunSession(ctx context.Context, cfg Config) (string, error) {
	if cfg.Queue == nil || cfg.Gate == nil {
		return "", fmt.Errorf("queue and gate are required")
	}

	p := tea.NewProgram(newModel(cfg),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		// Context cancellation (signal-driven shutdown) is a normal exit.
		if !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, context.Canceled) {
			return "", fmt.Errorf("tui error: %w", err)
		}
	}

	return cfg.Queue.Snapshot().Summary, nil
}
