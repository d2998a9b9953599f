package preview

import (
	"fmt"

	"codeberg.org/uigen/server/internal/client"
)

// which representation of the generated UI is selected
type Language int

const (
	HTML Language = iota
	React
)

const ReactPreviewNotice = "React component preview not available. Please copy and use the code in a React environment."

func (l Language) String() string {
	if l == React {
		return "React"
	}

	return "HTML"
}

// fence tag for syntax highlighting
func (l Language) FenceTag() string {
	if l == React {
		return "jsx"
	}

	return "html"
}

// the code and preview views over one generated result
type Panels struct {
	UI       client.GeneratedUI
	Language Language
}

func NewPanels(ui client.GeneratedUI) *Panels {
	return &Panels{UI: ui, Language: HTML}
}

// flips between HTML and React
func (p *Panels) Toggle() {
	if p.Language == React {
		p.Language = HTML
		return
	}

	p.Language = React
}

func (p *Panels) ToggleLabel() string {
	if p.Language == React {
		return "Show HTML"
	}

	return "Show React"
}

func (p *Panels) CodeTitle() string {
	return fmt.Sprintf("Generated UI Code: %s", p.Language)
}

// raw text of the selected language, unsanitized
func (p *Panels) Code() string {
	if p.Language == React {
		return p.UI.React
	}

	return p.UI.HTML
}

// sanitized markup for the HTML view, a fixed notice for React
func (p *Panels) Preview() string {
	if p.Language == React {
		return ReactPreviewNotice
	}

	return Sanitize(p.UI.HTML)
}

// copies the selected raw code
func (p *Panels) Copy(copier Copier) error {
	return copier.Copy(p.Code())
}
