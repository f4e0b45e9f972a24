package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the portal and blocks until the user quits or ctx is done.
func Run(ctx context.Context, backend Backend, opts Options) error {
	m := New(ctx, backend, opts)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
