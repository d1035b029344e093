package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/noah-andersen/image-manager/internal/cli"
	"github.com/noah-andersen/image-manager/internal/curation"
)

type curateState int

const (
	curateBrowse curateState = iota
	curateEdit
	curateReport
)

// CurateModel is the bubbletea model for the curation review screen. It
// drives a curation.Session; all dataset mutations go through the
// session's operations.
type CurateModel struct {
	session   *curation.Session
	exportDir string
	status    string
	gradeIn   textinput.Model
	companyIn textinput.Model
	report    curation.ExportResult
	keymap    CurateKeyMap
	state     curateState
	editFocus int
	width     int
	height    int
	showHelp  bool
}

// NewCurateModel creates the curation screen over an existing session.
// exportDir is the target of the in-session export key; empty disables it.
func NewCurateModel(session *curation.Session, exportDir string) CurateModel {
	grade := textinput.New()
	grade.Placeholder = "grade (e.g. 10, 9.5)"
	grade.CharLimit = 32

	company := textinput.New()
	company.Placeholder = "grading company (e.g. PSA)"
	company.CharLimit = 64

	return CurateModel{
		session:   session,
		exportDir: exportDir,
		keymap:    DefaultCurateKeyMap(),
		gradeIn:   grade,
		companyIn: company,
	}
}

// Init implements tea.Model.
func (m CurateModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m CurateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch m.state {
		case curateEdit:
			return m.updateEdit(msg)
		case curateReport:
			return m.updateReport(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m CurateModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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

	case key.Matches(msg, m.keymap.Edit):
		item, err := m.session.Current()
		if err != nil {
			m.status = cli.ErrorStyle.Render(err.Error())
			return m, nil
		}
		m.gradeIn.SetValue(item.Grade.String())
		m.companyIn.SetValue(item.GradingCompany)
		m.editFocus = 0
		m.gradeIn.Focus()
		m.companyIn.Blur()
		m.state = curateEdit
		return m, textinput.Blink

	case key.Matches(msg, m.keymap.SwapFront):
		if err := m.session.SwapImages(m.session.Cursor(), 0, 1); err != nil {
			m.status = cli.ErrorStyle.Render(err.Error())
		} else {
			m.status = cli.SuccessStyle.Render("Swapped images 1 and 2")
		}

	case key.Matches(msg, m.keymap.SwapBack):
		if err := m.session.SwapImages(m.session.Cursor(), 1, 2); err != nil {
			m.status = cli.ErrorStyle.Render(err.Error())
		} else {
			m.status = cli.SuccessStyle.Render("Swapped images 2 and 3")
		}

	case key.Matches(msg, m.keymap.MarkDelete):
		if err := m.session.MarkDeleted(m.session.Cursor()); err != nil {
			m.status = cli.ErrorStyle.Render(err.Error())
		} else {
			m.status = cli.WarningStyle.Render("Listing marked for deletion")
		}

	case key.Matches(msg, m.keymap.Restore):
		if err := m.session.UnmarkDeleted(m.session.Cursor()); err != nil {
			m.status = cli.ErrorStyle.Render(err.Error())
		} else {
			m.status = cli.SuccessStyle.Render("Listing restored")
		}

	case key.Matches(msg, m.keymap.DeleteImage):
		n, err := strconv.Atoi(msg.String())
		if err != nil {
			return m, nil
		}
		if err := m.session.DeleteImage(m.session.Cursor(), n-1); err != nil {
			m.status = cli.ErrorStyle.Render(err.Error())
		} else {
			m.status = cli.SuccessStyle.Render(fmt.Sprintf("Deleted image %d", n))
		}

	case key.Matches(msg, m.keymap.Export):
		if m.exportDir == "" {
			m.status = cli.WarningStyle.Render("No export directory configured (use --output)")
			return m, nil
		}
		result, err := m.session.Export(m.exportDir)
		if err != nil {
			m.status = cli.ErrorStyle.Render("Export failed: " + err.Error())
			return m, nil
		}
		m.report = result
		m.state = curateReport
	}

	return m, nil
}

func (m CurateModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = curateBrowse
		return m, nil
	case "tab", "shift+tab":
		m.editFocus = 1 - m.editFocus
		if m.editFocus == 0 {
			m.gradeIn.Focus()
			m.companyIn.Blur()
		} else {
			m.companyIn.Focus()
			m.gradeIn.Blur()
		}
		return m, textinput.Blink
	case "enter":
		if err := m.session.UpdateMetadata(m.session.Cursor(), m.gradeIn.Value(), m.companyIn.Value()); err != nil {
			m.status = cli.ErrorStyle.Render(err.Error())
		} else {
			m.status = cli.SuccessStyle.Render("Metadata updated")
		}
		m.state = curateBrowse
		return m, nil
	}

	var cmd tea.Cmd
	if m.editFocus == 0 {
		m.gradeIn, cmd = m.gradeIn.Update(msg)
	} else {
		m.companyIn, cmd = m.companyIn.Update(msg)
	}
	return m, cmd
}

func (m CurateModel) updateReport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Quit) {
		return m, tea.Quit
	}
	m.state = curateBrowse
	return m, nil
}

// View implements tea.Model.
func (m CurateModel) View() string {
	switch m.state {
	case curateEdit:
		return m.viewEdit()
	case curateReport:
		return m.viewReport()
	default:
		return m.viewBrowse()
	}
}

func (m CurateModel) viewBrowse() string {
	var b strings.Builder

	stats := m.session.Stats()
	if stats.Total == 0 {
		return cli.WarningStyle.Render("Dataset contains no items.") + "\n"
	}

	idx := m.session.Cursor()
	item, err := m.session.Current()
	if err != nil {
		return cli.ErrorStyle.Render(err.Error()) + "\n"
	}

	b.WriteString(cli.TitleStyle.Render(fmt.Sprintf("Card Dataset Manager · item %d/%d", idx+1, stats.Total)))
	b.WriteString("\n\n")

	if m.session.IsDeleted(idx) {
		b.WriteString(cli.ErrorStyle.Render("Marked for deletion (r to restore); it will not be exported"))
		b.WriteString("\n\n")
	}

	title := item.Title
	if title == "" {
		title = "(no title)"
	}
	b.WriteString(title + "\n")
	b.WriteString(cli.SubtleStyle.Render(fmt.Sprintf("listing %s · $%.2f", orUnknown(item.ListingID), item.Price)))
	b.WriteString("\n\n")

	grade := item.Grade.String()
	if !item.Grade.Truthy() {
		grade = cli.WarningStyle.Render("MISSING")
	}
	company := item.GradingCompany
	if company == "" {
		company = cli.WarningStyle.Render("MISSING")
	}
	b.WriteString(fmt.Sprintf("Grade: %s    Company: %s", grade, company))
	if m.session.IsModified(idx) {
		b.WriteString(cli.SubtleStyle.Render("  (modified)"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.viewImages(item.Images))

	if len(item.Images) != 2 {
		b.WriteString(cli.WarningStyle.Render(
			fmt.Sprintf("Export needs exactly 2 images (front/back); currently %d", len(item.Images))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(cli.SubtleStyle.Render(fmt.Sprintf(
		"total %d · modified %d · deleted %d · ready %d",
		stats.Total, stats.Modified, stats.Deleted, stats.Ready)))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(m.status + "\n")
	}

	if m.showHelp {
		b.WriteString(m.helpView())
	} else {
		b.WriteString(cli.SubtleStyle.Render("?: help · q: quit") + "\n")
	}

	return b.String()
}

func (m CurateModel) viewImages(images []string) string {
	if len(images) == 0 {
		return cli.WarningStyle.Render("No images available for this item") + "\n"
	}

	var b strings.Builder
	for i, rel := range images {
		role := "extra"
		switch i {
		case 0:
			role = "front"
		case 1:
			role = "back"
		}
		marker := cli.SuccessStyle.Render("ok")
		if _, err := os.Stat(m.session.ImagePath(rel)); err != nil {
			marker = cli.ErrorStyle.Render("missing")
		}
		b.WriteString(fmt.Sprintf("  %d. [%s] %s %s\n", i+1, role, rel, marker))
	}
	return b.String()
}

func (m CurateModel) viewEdit() string {
	var b strings.Builder
	b.WriteString(cli.TitleStyle.Render("Edit metadata"))
	b.WriteString("\n\n")
	b.WriteString("Grade:   " + m.gradeIn.View() + "\n")
	b.WriteString("Company: " + m.companyIn.View() + "\n\n")
	b.WriteString(cli.SubtleStyle.Render("tab: switch field · enter: save and advance · esc: cancel"))
	b.WriteString("\n")
	return b.String()
}

func (m CurateModel) viewReport() string {
	var b strings.Builder
	b.WriteString(cli.TitleStyle.Render("Export complete"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Exported: %s   Skipped: %s\n\n",
		cli.SuccessStyle.Render(strconv.Itoa(m.report.Exported)),
		cli.WarningStyle.Render(strconv.Itoa(m.report.Skipped))))
	for _, entry := range m.report.Log {
		b.WriteString("  " + entry + "\n")
	}
	b.WriteString("\n")
	b.WriteString(cli.SubtleStyle.Render("any key: back · q: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m CurateModel) helpView() string {
	lines := []string{
		"←/h previous · →/l next",
		"enter/e edit grade and company (saving advances)",
		"s swap images 1↔2 · x swap images 2↔3 · 1-9 delete image",
		"d mark for deletion · r restore",
		"E export · q quit",
	}
	return cli.SubtleStyle.Render(strings.Join(lines, "\n")) + "\n"
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
