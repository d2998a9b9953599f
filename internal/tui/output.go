package tui

import (
	"fmt"
	"strings"

	"codeberg.org/uigen/server/internal/client"
	"codeberg.org/uigen/server/internal/logger"
	"codeberg.org/uigen/server/internal/preview"
	"github.com/charmbracelet/glamour"
)

const defaultWrapWidth = 100

func NewOutputModel() *OutputModel {
	return &OutputModel{width: defaultWrapWidth}
}

// replaces the shown result; the language resets to HTML
func (o *OutputModel) SetResult(ui client.GeneratedUI) {
	o.panels = preview.NewPanels(ui)
}

func (o *OutputModel) HasResult() bool {
	return o.panels != nil
}

func (o *OutputModel) Panels() *preview.Panels {
	return o.panels
}

func (o *OutputModel) Resize(width int) {
	if width <= 0 || width == o.width {
		return
	}

	o.width = width
	o.renderer = nil
}

// fenced code for the selected language, highlighted by glamour
func (o *OutputModel) renderCode() string {
	code := o.panels.Code()
	markdown := fmt.Sprintf("```%s\n%s\n```\n", o.panels.Language.FenceTag(), code)

	if o.renderer == nil {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(o.width),
		)
		if err != nil {
			logger.ErrorErr(err, "failed to create code renderer")
			return code
		}
		o.renderer = renderer
	}

	rendered, err := o.renderer.Render(markdown)
	if err != nil {
		logger.ErrorErr(err, "failed to render code")
		return code
	}

	return strings.TrimRight(rendered, "\n")
}

func (o *OutputModel) View() string {
	if o.panels == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(o.panels.CodeTitle()))
	b.WriteString("\n")
	b.WriteString(o.renderCode())
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Preview:"))
	b.WriteString("\n")

	if o.panels.Language == preview.React {
		b.WriteString(infoStyle.Render(o.panels.Preview()))
	} else {
		b.WriteString(boxStyle.Width(max(20, o.width-4)).Render(o.panels.Preview()))
	}
	b.WriteString("\n")

	return b.String()
}
