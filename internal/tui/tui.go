package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"codeberg.org/uigen/server/internal/client"
	"codeberg.org/uigen/server/internal/config"
	"codeberg.org/uigen/server/internal/logger"
	"codeberg.org/uigen/server/internal/preview"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	eventBufferSize   = 64
	parseFailureAlert = "The generated response could not be read. Please try again."
)

func NewApp(generator Generator, opts Options) *Model {
	if opts.ParseFailure == "" {
		opts.ParseFailure = config.ParseFailureAlert
	}

	if opts.Copier == nil {
		opts.Copier = preview.SystemClipboard{}
	}

	return &Model{
		generator: generator,
		opts:      opts,
		form:      NewFormModel(),
		output:    NewOutputModel(),
	}
}

func (m *Model) Init() tea.Cmd {
	return m.form.input.Focus()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit

		case "ctrl+s":
			return m, m.submit()

		case "ctrl+t":
			if m.output.HasResult() {
				m.output.Panels().Toggle()
			}
			return m, nil

		case "ctrl+y":
			m.copyCode()
			return m, nil

		case "ctrl+p":
			m.writePreview()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.output.Resize(msg.Width - 4)

	case ChunkMsg:
		m.form.streamed += msg.Text
		return m, waitForEvent(m.events)

	case GenerateDoneMsg:
		m.handleDone(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)

	return m, cmd
}

// validates and starts a generation; a no-op while one is pending
func (m *Model) submit() tea.Cmd {
	if m.form.pending {
		return nil
	}

	if !m.form.validate() {
		return nil
	}

	m.alert = ""
	m.status = ""
	m.form.start()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.events = make(chan generationEvent, eventBufferSize)

	return tea.Batch(
		generate(ctx, m.generator, m.form.Value(), m.events),
		waitForEvent(m.events),
		m.form.spinner.Tick,
	)
}

// runs the request; chunks and the final result are delivered through events
func generate(ctx context.Context, generator Generator, prompt string, events chan<- generationEvent) tea.Cmd {
	return func() tea.Msg {
		ui, err := generator.Generate(ctx, prompt, func(chunk string) {
			select {
			case events <- ChunkMsg{Text: chunk}:
			case <-ctx.Done():
			}
		})

		select {
		case events <- GenerateDoneMsg{UI: ui, Err: err}:
		case <-ctx.Done():
		}

		return nil
	}
}

func waitForEvent(events <-chan generationEvent) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

func (m *Model) handleDone(msg GenerateDoneMsg) {
	m.form.finish()

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	if msg.Err == nil {
		m.output.SetResult(*msg.UI)
		logger.Info("generation completed", "html_bytes", len(msg.UI.HTML), "react_bytes", len(msg.UI.React))
		return
	}

	// the previous result stays on screen for every failure
	var parseErr *client.ParseError
	switch {
	case errors.As(msg.Err, &parseErr):
		logger.ErrorErr(parseErr.Err, "failed to parse generated UI", "raw_bytes", len(parseErr.Raw))
		if m.opts.ParseFailure == config.ParseFailureAlert {
			m.alert = parseFailureAlert
		}

	case errors.Is(msg.Err, client.ErrRateLimited):
		logger.Warn("rate limited", "error", msg.Err)
		m.alert = msg.Err.Error()

	default:
		logger.ErrorErr(msg.Err, "generation failed")
		m.alert = fmt.Sprintf("Error: %v", msg.Err)
	}
}

func (m *Model) copyCode() {
	if !m.output.HasResult() {
		return
	}

	if err := m.output.Panels().Copy(m.opts.Copier); err != nil {
		logger.ErrorErr(err, "copy failed")
		m.alert = err.Error()
		return
	}

	m.status = fmt.Sprintf("Copied %s code to clipboard", m.output.Panels().Language)
}

func (m *Model) writePreview() {
	if !m.output.HasResult() || m.opts.PreviewPath == "" {
		return
	}

	if err := preview.WriteDocument(m.opts.PreviewPath, m.output.Panels().UI); err != nil {
		logger.ErrorErr(err, "failed to write preview")
		m.alert = err.Error()
		return
	}

	m.status = fmt.Sprintf("Preview written to %s", m.opts.PreviewPath)
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("AI UI Generator"))
	b.WriteString("\n")
	b.WriteString(m.form.View())

	if m.alert != "" {
		b.WriteString(alertStyle.Render(m.alert))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	if m.output.HasResult() {
		b.WriteString("\n")
		b.WriteString(m.output.View())
	}

	help := "[Ctrl+S: Generate] [Esc: Quit]"
	if m.output.HasResult() {
		help = fmt.Sprintf("[Ctrl+S: Generate] [Ctrl+T: %s] [Ctrl+Y: Copy] [Ctrl+P: Write preview] [Esc: Quit]",
			m.output.Panels().ToggleLabel())
	}
	b.WriteString(helpStyle.Render(help))

	return b.String()
}
