package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/library"
	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/store"
	"github.com/julianstephens/dayplan/internal/tui/components/settingsview"
	"github.com/julianstephens/dayplan/internal/tui/components/templatelist"
	"github.com/julianstephens/dayplan/internal/tui/components/timeline"
)

// SessionState is the TUI's top-level screen, grounded on the teacher's
// constants.SessionState tab enum.
type SessionState int

const (
	StateTimeline SessionState = iota
	StateUpNext
	StateTemplates
	StateSettings
	StateEditingTemplate
	StateEditingSettings
	StateConfirmDelete
	numMainTabs = StateSettings + 1
)

// Model is the root bubbletea model, grounded on the teacher's tui.Model.
type Model struct {
	store *store.Store
	date  string
	now   time.Time

	state         SessionState
	keys          KeyMap
	help          help.Model
	width, height int
	quitting      bool

	timelineModel timeline.Model
	templateList  templatelist.Model
	settingsView  settingsview.Model

	upNext models.UpNextResult

	form                  *huh.Form
	templateForm          *TemplateFormModel
	settingsForm          *SettingsFormModel
	editingNewTemplate    bool
	templateToDeleteID    string
	formError             string
}

func NewModel(s *store.Store) Model {
	m := Model{
		store: s,
		date:  time.Now().Format(constants.DateFormat),
		now:   time.Now(),
		state: StateTimeline,
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
	m.timelineModel = timeline.New(0, 0)
	m.templateList = templatelist.New(nil, nil, 0, 0)
	m.settingsView = settingsview.New(s.Settings(), 0, 0)
	m.refreshAll()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateTimeline:
		keys = append(keys, m.keys.Toggle)
	case StateTemplates:
		keys = append(keys, m.keys.Add, m.keys.Edit, m.keys.Delete)
	case StateSettings:
		keys = append(keys, m.keys.Edit)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}
	var actions []key.Binding
	switch m.state {
	case StateTimeline:
		actions = []key.Binding{m.keys.Toggle}
	case StateTemplates:
		actions = []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// refreshAll reloads the timeline, up-next suggestion, template list and
// settings panel from the store. Called after every mutation.
func (m *Model) refreshAll() {
	nowMins := m.now.Hour()*60 + m.now.Minute()

	vm, err := m.store.BuildTimelineForDate(m.date, &nowMins)
	if err == nil {
		overlay, err := m.store.ApplyNowOverlay(m.date, vm, true, nowMins)
		if err == nil {
			templates := make(map[string]models.Template)
			for _, t := range m.store.AllTemplates() {
				templates[t.ID] = t
			}
			instances := make(map[string]models.Instance)
			if insts, err := m.store.InstancesForDate(m.date); err == nil {
				for _, inst := range insts {
					instances[inst.TemplateID] = inst
				}
			}
			m.timelineModel.SetData(vm, overlay, templates, instances)
		}
	}

	if res, err := m.store.UpNextForDate(m.date, nowMins); err == nil {
		m.upNext = res
	}

	m.refreshTemplateList()
	m.settingsView.SetSettings(m.store.Settings())
}

func (m *Model) refreshTemplateList() {
	templates := m.store.Templates()
	badges := library.DependencyBadges(m.store.AllTemplates())
	m.templateList.SetTemplates(templates, badges)
}
