package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dayplan/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateTimeline:
		content = docStyle.Render(m.timelineModel.View())
	case StateUpNext:
		content = m.viewUpNext()
	case StateTemplates:
		content = docStyle.Render(m.templateList.View())
	case StateSettings:
		content = docStyle.Render(m.settingsView.View())
	case StateEditingTemplate, StateEditingSettings:
		content = m.viewForm()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.help.View(m),
	)
	return ui
}

func (m Model) viewTabs() string {
	titles := []string{"Timeline", "Up Next", "Templates", "Settings"}
	var tabs []string
	for i, title := range titles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewUpNext() string {
	var body string
	switch m.upNext.Kind {
	case models.UpNextNone:
		body = "Nothing up next."
	case models.UpNextAnchor:
		body = fmt.Sprintf("Up next (fixed): %s", m.upNext.TemplateID)
	case models.UpNextFlexible:
		body = fmt.Sprintf("Up next: %s", m.upNext.TemplateID)
	}
	return docStyle.Render(titleStyle.Render("Up Next") + "\n\n" + body)
}

func (m Model) viewForm() string {
	formContent := m.form.View()
	if m.formError != "" {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true).Padding(1, 0)
		formContent = lipgloss.JoinVertical(lipgloss.Left, errorStyle.Render("Error: "+m.formError), formContent)
	}
	return formContent
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete this template?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
