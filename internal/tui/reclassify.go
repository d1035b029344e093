package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/noah-andersen/image-manager/internal/cli"
	"github.com/noah-andersen/image-manager/internal/reclassify"
)

// ReclassifyModel is the bubbletea model for the grade-10 reclassification
// screen: one pair at a time, classify as mint or poor, or skip.
type ReclassifyModel struct {
	session  *reclassify.Session
	status   string
	keymap   ReclassifyKeyMap
	width    int
	height   int
	showHelp bool
}

// NewReclassifyModel creates the reclassification screen over a loaded
// session.
func NewReclassifyModel(session *reclassify.Session) ReclassifyModel {
	return ReclassifyModel{
		session: session,
		keymap:  DefaultReclassifyKeyMap(),
	}
}

// Init implements tea.Model.
func (m ReclassifyModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ReclassifyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m.status = ""

		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keymap.Help):
			m.showHelp = !m.showHelp

		case key.Matches(msg, m.keymap.Prev):
			m.session.Prev()

		case key.Matches(msg, m.keymap.Next):
			m.session.Next()

		case key.Matches(msg, m.keymap.Skip):
			m.session.Skip()

		case key.Matches(msg, m.keymap.Mint):
			m.classify(reclassify.GradeMint)
			return m, nil

		case key.Matches(msg, m.keymap.Poor):
			m.classify(reclassify.GradePoor)
			return m, nil
		}
	}
	return m, nil
}

func (m *ReclassifyModel) classify(label string) {
	if err := m.session.Classify(label); err != nil {
		m.status = cli.ErrorStyle.Render("Classification failed: " + err.Error())
		return
	}
	m.status = cli.SuccessStyle.Render("Classified as " + label)
}

// View implements tea.Model.
func (m ReclassifyModel) View() string {
	stats := m.session.Stats()
	if stats.Total == 0 {
		return cli.WarningStyle.Render("No card pairs with grade 10/10.0 found in the directory.") + "\n"
	}

	pair, err := m.session.Current()
	if err != nil {
		return cli.ErrorStyle.Render(err.Error()) + "\n"
	}

	var b strings.Builder
	b.WriteString(cli.TitleStyle.Render(fmt.Sprintf("Grade 10 Classifier · pair %d/%d",
		m.session.Cursor()+1, stats.Total)))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Unique ID: %s    Current grade: %s\n\n", pair.UniqueID, pair.GradeLabel))
	b.WriteString("  front: " + m.fileLine(pair.FrontName) + "\n")
	b.WriteString("  back:  " + m.fileLine(pair.BackName) + "\n\n")

	b.WriteString(cli.SubtleStyle.Render(fmt.Sprintf(
		"total %d · classified %d · remaining %d",
		stats.Total, stats.Classified, stats.Remaining)))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(m.status + "\n")
	}

	if m.showHelp {
		lines := []string{
			"m classify as 10m (mint) · p classify as 10p (poor)",
			"space/s skip · ←/h previous · →/l next · q quit",
		}
		b.WriteString(cli.SubtleStyle.Render(strings.Join(lines, "\n")) + "\n")
	} else {
		b.WriteString(cli.SubtleStyle.Render("m: mint · p: poor · space: skip · ?: help · q: quit") + "\n")
	}

	return b.String()
}

func (m ReclassifyModel) fileLine(name string) string {
	if _, err := os.Stat(m.session.PairPath(name)); err != nil {
		return name + " " + cli.ErrorStyle.Render("missing")
	}
	return name
}
