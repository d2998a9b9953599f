package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"codeberg.org/uigen/server/internal/client"
)

// generates without the interactive UI: chunks go to stream as they arrive,
// the parsed result goes to result as indented JSON
func RunOnce(ctx context.Context, generator Generator, prompt string, stream, result io.Writer) error {
	if err := client.ValidatePrompt(prompt); err != nil {
		return err
	}

	ui, err := generator.Generate(ctx, prompt, func(chunk string) {
		io.WriteString(stream, chunk) //nolint:errcheck,gosec // progress output only
	})
	fmt.Fprintln(stream) //nolint:errcheck

	if err != nil {
		return err
	}

	enc := json.NewEncoder(result)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(ui); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	return nil
}
