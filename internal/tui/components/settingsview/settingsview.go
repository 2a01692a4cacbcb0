// Package settingsview renders models.Settings as a read-only panel,
// grounded on the teacher's components/settings viewport-backed renderer.
package settingsview

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dayplan/internal/models"
)

type EditSettingsMsg struct{}

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(28)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true).MarginTop(1)
)

type Model struct {
	settings models.Settings
	viewport viewport.Model
	width    int
	height   int
}

func New(settings models.Settings, width, height int) Model {
	m := Model{settings: settings, viewport: viewport.New(width, height)}
	m.render()
	return m
}

func (m *Model) SetSettings(settings models.Settings) {
	m.settings = settings
	m.render()
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "e" {
		return m, func() tea.Msg { return EditSettingsMsg{} }
	}
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
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

func (m *Model) render() {
	content := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%s %s", labelStyle.Render("Desired sleep (hours):"), valueStyle.Render(fmt.Sprintf("%.1f", m.settings.DesiredSleepDurationHours))),
		fmt.Sprintf("%s %s", labelStyle.Render("Default wake time:"), valueStyle.Render(m.settings.DefaultWakeTime)),
		fmt.Sprintf("%s %s", labelStyle.Render("Default sleep time:"), valueStyle.Render(m.settings.DefaultSleepTime)),
		helpStyle.Render("Press 'e' to edit"),
	)
	m.viewport.SetContent(lipgloss.NewStyle().Padding(0, 2).Render(content))
}
