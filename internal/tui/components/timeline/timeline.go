// Package timeline renders a models.TimelineVM plus its NowOverlay as a
// scrollable text timeline, grounded on the teacher's components/plan
// viewport-backed renderer (daylit-cli/internal/tui/components/plan).
package timeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dayplan/internal/models"
)

var (
	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(13)

	mandatoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	fixedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	flexibleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	gapStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Italic(true)
	doneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	nowLineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	cursorStyle    = lipgloss.NewStyle().Background(lipgloss.Color("236"))
)

// Model is a scrollable view over one day's blocks, gaps and now-overlay.
type Model struct {
	viewport  viewport.Model
	blocks    []models.VMBlock
	overlay   models.NowOverlay
	vm        models.TimelineVM
	templates map[string]models.Template
	instances map[string]models.Instance
	cursor    int
	width     int
	height    int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.blocks) == 0 {
		return "No blocks scheduled for this day."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

// SetData replaces the rendered day. The cursor keeps its position unless it
// now points past the last block, in which case it returns to the first block.
func (m *Model) SetData(vm models.TimelineVM, overlay models.NowOverlay, templates map[string]models.Template, instances map[string]models.Instance) {
	m.vm = vm
	m.overlay = overlay
	m.templates = templates
	m.instances = instances

	m.blocks = append([]models.VMBlock(nil), vm.Blocks...)
	sort.SliceStable(m.blocks, func(i, j int) bool { return m.blocks[i].StartMins() < m.blocks[j].StartMins() })
	if m.cursor >= len(m.blocks) {
		m.cursor = 0
	}
	m.render()
}

// SelectedTemplateID returns the template id under the cursor, or "" if the
// day has no blocks.
func (m Model) SelectedTemplateID() string {
	if m.cursor < 0 || m.cursor >= len(m.blocks) {
		return ""
	}
	return m.blocks[m.cursor].TemplateID
}

func (m *Model) CursorDown() {
	if m.cursor < len(m.blocks)-1 {
		m.cursor++
	}
	m.render()
}

func (m *Model) CursorUp() {
	if m.cursor > 0 {
		m.cursor--
	}
	m.render()
}

func adjustmentFor(overlay models.NowOverlay, templateID string) (models.OverdueKind, bool) {
	for _, a := range overlay.BlockAdjustments {
		if a.TemplateID == templateID {
			return a.OverdueKind, true
		}
	}
	return models.OverdueNone, false
}

func formatMinutes(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

func (m *Model) render() {
	if len(m.blocks) == 0 {
		m.viewport.SetContent("")
		return
	}

	var b strings.Builder
	if m.overlay.IsToday {
		b.WriteString(nowLineStyle.Render(fmt.Sprintf("now: %s", formatMinutes(m.overlay.NowMins))) + "\n\n")
	}

	for i, block := range m.blocks {
		tmpl := m.templates[block.TemplateID]
		name := tmpl.Name
		if name == "" {
			name = block.TemplateID
		}

		var badge string
		switch {
		case block.IsMandatory:
			badge = mandatoryStyle.Render("[M]")
		case block.IsFixed:
			badge = fixedStyle.Render("[F]")
		default:
			badge = flexibleStyle.Render("[~]")
		}

		label := fmt.Sprintf("%s %s", badge, name)
		if inst, ok := m.instances[block.TemplateID]; ok && inst.Status == models.StatusCompleted {
			label = doneStyle.Render(label)
		}

		if kind, ok := adjustmentFor(m.overlay, block.TemplateID); ok && kind != models.OverdueNone {
			label += " " + overdueStyle.Render(fmt.Sprintf("(overdue: %s)", kind))
		}

		timeRange := fmt.Sprintf("%s-%s", formatMinutes(block.StartMins()), formatMinutes(block.EndMins()))
		line := fmt.Sprintf("%s %s", timeStyle.Render(timeRange), label)
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if len(m.vm.Gaps) > 0 {
		b.WriteString("\n" + gapStyle.Render("-- free time --") + "\n")
		for _, g := range m.vm.Gaps {
			b.WriteString(gapStyle.Render(fmt.Sprintf("%s %s-%s", timeStyle.Render(""), formatMinutes(g.StartMins), formatMinutes(g.EndMins))) + "\n")
		}
	}

	m.viewport.SetContent(b.String())
}
