package tui

import (
	"context"

	"codeberg.org/uigen/server/internal/client"
	"codeberg.org/uigen/server/internal/preview"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/glamour"
)

// streams a generation; *client.Client satisfies it
type Generator interface {
	Generate(ctx context.Context, prompt string, onChunk func(string)) (*client.GeneratedUI, error)
}

// settings the model needs besides the generator
type Options struct {
	ParseFailure string // config.ParseFailureAlert or config.ParseFailureSilent
	PreviewPath  string
	Copier       preview.Copier
}

// main TUI application model
type Model struct {
	generator Generator
	opts      Options
	width     int
	height    int
	form      *FormModel
	output    *OutputModel
	alert     string
	status    string
	cancel    context.CancelFunc
	events    chan generationEvent
}

// prompt entry, validation and pending state
type FormModel struct {
	input      textarea.Model
	spinner    spinner.Model
	validation string
	pending    bool
	streamed   string
	width      int
}

// code and preview panels for the last good result
type OutputModel struct {
	panels   *preview.Panels
	renderer *glamour.TermRenderer
	width    int
}

// carried from the generation goroutine to Update
type generationEvent interface {
	isGenerationEvent()
}

// one streamed fragment
type ChunkMsg struct {
	Text string
}

// the stream ended, with a parsed result or an error
type GenerateDoneMsg struct {
	UI  *client.GeneratedUI
	Err error
}

func (ChunkMsg) isGenerationEvent()        {}
func (GenerateDoneMsg) isGenerationEvent() {}
