package tui

import (
	"strings"

	"codeberg.org/uigen/server/internal/client"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	formLabel         = "Describe your desired UI"
	submitLabel       = "Generate UI"
	pendingLabel      = "Generating..."
	streamPreviewRows = 8
)

// returns a focused form with a suggestion as placeholder
func NewFormModel() *FormModel {
	ta := textarea.New()
	ta.Placeholder = client.RandomSuggestion()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(80)
	ta.SetHeight(4)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorLightGray)

	return &FormModel{
		input:   ta,
		spinner: sp,
		width:   80,
	}
}

func (f *FormModel) Value() string {
	return f.input.Value()
}

func (f *FormModel) SetValue(s string) {
	f.input.SetValue(s)
}

// checks the prompt; a failure is shown inline and nothing is sent
func (f *FormModel) validate() bool {
	if err := client.ValidatePrompt(f.input.Value()); err != nil {
		f.validation = err.Error()
		return false
	}

	f.validation = ""
	return true
}

func (f *FormModel) start() {
	f.pending = true
	f.streamed = ""
	f.input.Blur()
}

func (f *FormModel) finish() {
	f.pending = false
	f.input.Focus()
}

func (f *FormModel) Update(msg tea.Msg) (*FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !f.pending {
			return f, nil
		}

		var cmd tea.Cmd
		f.spinner, cmd = f.spinner.Update(msg)
		return f, cmd

	case tea.WindowSizeMsg:
		f.width = msg.Width - 4
		f.input.SetWidth(max(20, msg.Width-6))
		return f, nil
	}

	// input is read-only while a request is in flight
	if f.pending {
		return f, nil
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)

	// editing clears a stale validation message
	if _, ok := msg.(tea.KeyMsg); ok && f.validation != "" && client.ValidatePrompt(f.input.Value()) == nil {
		f.validation = ""
	}

	return f, cmd
}

func (f *FormModel) View() string {
	var b strings.Builder

	b.WriteString(labelStyle.Render(formLabel))
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(f.input.View()))
	b.WriteString("\n")

	if f.validation != "" {
		b.WriteString(validationStyle.Render(f.validation))
		b.WriteString("\n")
	}

	if f.pending {
		b.WriteString(buttonDisabledStyle.Render(f.spinner.View() + " " + pendingLabel))
	} else {
		b.WriteString(buttonStyle.Render(submitLabel))
	}
	b.WriteString("\n")

	if f.pending && f.streamed != "" {
		b.WriteString(infoStyle.Render(tail(f.streamed, streamPreviewRows)))
		b.WriteString("\n")
	}

	return b.String()
}

// last n lines of s
func tail(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}

	return strings.Join(lines[len(lines)-n:], "\n")
}
