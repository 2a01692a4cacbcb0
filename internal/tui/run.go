// Package tui implements the bubbletea timeline browser, grounded on the
// teacher's internal/tui package: the same tab/form/confirm state-machine
// shape, rewired to render TimelineVM/NowOverlay/UpNextResult instead of
// DayPlan/Slot views.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dayplan/internal/store"
)

// Run launches the interactive timeline browser against the given store.
func Run(s *store.Store) error {
	p := tea.NewProgram(NewModel(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
