package preview

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// writes text to a clipboard
type Copier interface {
	Copy(text string) error
}

// the operating system clipboard
type SystemClipboard struct{}

func (SystemClipboard) Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard not supported on this system")
	}

	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	return nil
}
