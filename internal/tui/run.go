package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/noah-andersen/image-manager/internal/curation"
	"github.com/noah-andersen/image-manager/internal/reclassify"
)

// RunCurate runs the curation review screen until the operator quits.
func RunCurate(session *curation.Session, exportDir string) error {
	p := tea.NewProgram(NewCurateModel(session, exportDir), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("curation screen failed: %w", err)
	}
	return nil
}

// RunReclassify runs the reclassification review screen until the operator
// quits.
func RunReclassify(session *reclassify.Session) error {
	p := tea.NewProgram(NewReclassifyModel(session), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("reclassification screen failed: %w", err)
	}
	return nil
}
