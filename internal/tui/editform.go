// Package tui implements the interactive edit form for a purchy record,
// the terminal analog of the edit modal.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kmadhuranga/purchy/internal/cli"
	"github.com/kmadhuranga/purchy/internal/edit"
	"github.com/kmadhuranga/purchy/internal/model"
)

// Field indices of the form inputs.
const (
	fieldAccount = iota
	fieldDate
	fieldWeight
	fieldNumber
	fieldCount
)

var fieldLabels = [fieldCount]string{"Account ID", "Date (YYYY-MM-DD)", "Weight", "Purchy Number"}

// EditFormModel collects edited field values for one purchy record. It only
// gathers input; diffing and saving stay with the edit session.
type EditFormModel struct {
	inputs    [fieldCount]textinput.Model
	accounts  []model.Account
	focus     int
	submitted bool
	canceled  bool
	width     int
}

// NewEditForm creates a form seeded with the session's live values.
func NewEditForm(initial edit.Fields, accounts []model.Account) EditFormModel {
	m := EditFormModel{accounts: accounts}

	values := [fieldCount]string{initial.AccountID, initial.PurchyDate, initial.Weight, initial.PurchyID}
	for i := range m.inputs {
		input := textinput.New()
		input.SetValue(values[i])
		input.Prompt = ""
		input.CharLimit = 64
		if i == fieldDate {
			input.Placeholder = "2006-01-02"
		}
		m.inputs[i] = input
	}
	m.inputs[fieldAccount].Focus()

	return m
}

// Init implements tea.Model.
func (m EditFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m EditFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.canceled = true
			return m, tea.Quit

		case tea.KeyEnter:
			if m.focus == fieldCount-1 {
				m.submitted = true
				return m, tea.Quit
			}
			return m.focusField(m.focus + 1)

		case tea.KeyTab, tea.KeyDown:
			return m.focusField((m.focus + 1) % fieldCount)

		case tea.KeyShiftTab, tea.KeyUp:
			return m.focusField((m.focus + fieldCount - 1) % fieldCount)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m EditFormModel) focusField(index int) (EditFormModel, tea.Cmd) {
	m.inputs[m.focus].Blur()
	m.focus = index
	return m, m.inputs[m.focus].Focus()
}

// View implements tea.Model.
func (m EditFormModel) View() string {
	var b strings.Builder

	b.WriteString(cli.FormatTitle("Edit Purchy"))
	b.WriteString("\n\n")

	for i := range m.inputs {
		label := cli.SubtleStyle.Render(fieldLabels[i])
		if i == m.focus {
			label = cli.PromptStyle.Render(fieldLabels[i])
		}
		fmt.Fprintf(&b, "%s\n%s\n\n", label, m.inputs[i].View())
	}

	if hint := m.accountHint(); hint != "" {
		b.WriteString(hint)
		b.WriteString("\n")
	}

	b.WriteString(cli.SubtleStyle.Render("enter: next/save · tab: next field · esc: cancel"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// accountHint lists the known accounts while the account field is focused.
func (m EditFormModel) accountHint() string {
	if m.focus != fieldAccount || len(m.accounts) == 0 {
		return ""
	}

	parts := make([]string, 0, len(m.accounts))
	for _, a := range m.accounts {
		parts = append(parts, fmt.Sprintf("%s (%s)", a.AccountID, a.AccountName))
	}
	return cli.SubtleStyle.Render("accounts: " + strings.Join(parts, ", "))
}

// Canceled reports whether the user abandoned the form.
func (m EditFormModel) Canceled() bool {
	return m.canceled
}

// Submitted reports whether the user confirmed the form.
func (m EditFormModel) Submitted() bool {
	return m.submitted
}

// Fields returns the edited values.
func (m EditFormModel) Fields() edit.Fields {
	return edit.Fields{
		AccountID:  strings.TrimSpace(m.inputs[fieldAccount].Value()),
		PurchyDate: strings.TrimSpace(m.inputs[fieldDate].Value()),
		Weight:     strings.TrimSpace(m.inputs[fieldWeight].Value()),
		PurchyID:   strings.TrimSpace(m.inputs[fieldNumber].Value()),
	}
}

// RunEditForm runs the form to completion and returns the edited fields.
// The second return value is false when the user canceled.
func RunEditForm(initial edit.Fields, accounts []model.Account) (edit.Fields, bool, error) {
	program := tea.NewProgram(NewEditForm(initial, accounts))

	final, err := program.Run()
	if err != nil {
		return edit.Fields{}, false, fmt.Errorf("edit form failed: %w", err)
	}

	m, ok := final.(EditFormModel)
	if !ok || !m.Submitted() {
		return edit.Fields{}, false, nil
	}
	return m.Fields(), true, nil
}
