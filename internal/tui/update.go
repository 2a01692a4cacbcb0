package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/tui/components/settingsview"
	"github.com/julianstephens/dayplan/internal/tui/components/templatelist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch m.state {
	case StateEditingTemplate:
		return m.updateTemplateForm(msg)
	case StateEditingSettings:
		return m.updateSettingsForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		listHeight := msg.Height - 4
		h, v := docStyle.GetFrameSize()
		m.timelineModel.SetSize(msg.Width-h, listHeight-v)
		m.templateList.SetSize(msg.Width-h, listHeight-v)
		m.settingsView.SetSize(msg.Width-h, listHeight-v)
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		m.refreshAll()
		return m, tick()

	case templatelist.AddTemplateMsg:
		m.templateForm = newTemplateFormModel(models.Template{
			SchedulingType: models.SchedulingFlexible,
			Priority:       3,
			IsActive:       true,
		})
		m.editingNewTemplate = true
		m.form = newTemplateForm(m.templateForm)
		m.state = StateEditingTemplate
		return m, m.form.Init()

	case templatelist.EditTemplateMsg:
		m.templateForm = newTemplateFormModel(msg.Template)
		m.editingNewTemplate = false
		m.form = newTemplateForm(m.templateForm)
		m.state = StateEditingTemplate
		return m, m.form.Init()

	case templatelist.DeleteTemplateMsg:
		m.templateToDeleteID = msg.ID
		m.state = StateConfirmDelete
		return m, nil

	case templatelist.DuplicateTemplateMsg:
		if _, outcome := m.store.DuplicateTemplate(msg.ID); outcome.Success {
			m.refreshAll()
		}
		return m, nil

	case settingsview.EditSettingsMsg:
		m.settingsForm = newSettingsFormModel(m.store.Settings())
		m.form = newSettingsForm(m.settingsForm)
		m.state = StateEditingSettings
		return m, m.form.Init()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab, m.keys.Right):
			m.state = (m.state + 1) % numMainTabs
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab, m.keys.Left):
			m.state = (m.state - 1 + numMainTabs) % numMainTabs
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case m.state == StateTimeline && key.Matches(msg, m.keys.Toggle):
			if id := m.timelineModel.SelectedTemplateID(); id != "" {
				m.store.ToggleCompletion(id, m.date, time.Now().UnixMilli())
				m.refreshAll()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateTimeline:
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, m.keys.Down):
				m.timelineModel.CursorDown()
			case key.Matches(msg, m.keys.Up):
				m.timelineModel.CursorUp()
			}
		}
		m.timelineModel, cmd = m.timelineModel.Update(msg)
		cmds = append(cmds, cmd)
	case StateTemplates:
		m.templateList, cmd = m.templateList.Update(msg)
		cmds = append(cmds, cmd)
	case StateSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateTemplateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateTemplates
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		tmpl := m.templateForm.toTemplate()
		if m.editingNewTemplate {
			_, outcome := m.store.CreateTemplate(tmpl)
			if !outcome.Success {
				m.formError = outcome.Err.Error()
				m.form.State = huh.StateNormal
				return m, tea.Batch(cmds...)
			}
		} else {
			_, outcome := m.store.UpdateTemplate(tmpl.ID, tmpl)
			if !outcome.Success {
				m.formError = outcome.Err.Error()
				m.form.State = huh.StateNormal
				return m, tea.Batch(cmds...)
			}
		}
		m.formError = ""
		m.refreshAll()
		m.state = StateTemplates
	case huh.StateAborted:
		m.state = StateTemplates
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateSettingsForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateSettings
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		outcome := m.store.SaveSettings(m.settingsForm.toSettings())
		if !outcome.Success {
			m.formError = outcome.Err.Error()
			m.form.State = huh.StateNormal
			return m, tea.Batch(cmds...)
		}
		m.formError = ""
		m.refreshAll()
		m.state = StateSettings
	case huh.StateAborted:
		m.state = StateSettings
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			m.store.SoftDeleteTemplate(m.templateToDeleteID)
			m.refreshAll()
			m.templateToDeleteID = ""
			m.state = StateTemplates
		case "n", "N", "esc", "q":
			m.templateToDeleteID = ""
			m.state = StateTemplates
		}
	}
	return m, nil
}
