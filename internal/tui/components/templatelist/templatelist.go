// Package templatelist renders the template library as a bubbles/list,
// grounded on the teacher's components/tasklist (daylit's tasklist.go).
package templatelist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dayplan/internal/dependency"
	"github.com/julianstephens/dayplan/internal/models"
)

type AddTemplateMsg struct{}

type DeleteTemplateMsg struct{ ID string }

type EditTemplateMsg struct{ Template models.Template }

type DuplicateTemplateMsg struct{ ID string }

// Item wraps a template plus its dependency badge for list display.
type Item struct {
	Template models.Template
	Badge    dependency.Status
}

func (i Item) Title() string {
	title := i.Template.Name
	if !i.Template.IsActive {
		title = "👻 " + title + " (inactive)"
	}
	if i.Template.Mandatory {
		title = "* " + title
	}
	return title
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%d min | priority %d | %s", i.Template.DurationMinutes, i.Template.Priority, i.Template.SchedulingType)
	if i.Badge != "" && i.Badge != dependency.StatusOK {
		desc += " | dep: " + string(i.Badge)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Template.Name }

type KeyMap struct {
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Duplicate key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Duplicate: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "duplicate")),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func items(templates []models.Template, badges map[string]dependency.Status) []list.Item {
	out := make([]list.Item, len(templates))
	for i, t := range templates {
		out[i] = Item{Template: t, Badge: badges[t.ID]}
	}
	return out
}

func New(templates []models.Template, badges map[string]dependency.Status, width, height int) Model {
	l := list.New(items(templates, badges), list.NewDefaultDelegate(), width, height)
	l.Title = "Templates"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Duplicate}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Duplicate}
	}

	return Model{list: l, keys: keys}
}

func (m *Model) SetTemplates(templates []models.Template, badges map[string]dependency.Status) {
	m.list.SetItems(items(templates, badges))
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddTemplateMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditTemplateMsg{Template: i.Template} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteTemplateMsg{ID: i.Template.ID} }
			}
		case key.Matches(msg, m.keys.Duplicate):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DuplicateTemplateMsg{ID: i.Template.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No templates yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
