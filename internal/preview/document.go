package preview

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"codeberg.org/uigen/server/internal/client"
)

var documentTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Preview</title>
<script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-gray-100 p-6">
<main class="mx-auto max-w-5xl rounded-lg bg-white p-6 shadow">
{{.}}
</main>
</body>
</html>
`))

// wraps already-sanitized markup in a standalone page styled by Tailwind
func Document(sanitized string) ([]byte, error) {
	var buf bytes.Buffer

	// the markup is trusted only because Sanitize produced it
	if err := documentTemplate.Execute(&buf, template.HTML(sanitized)); err != nil { //nolint:gosec
		return nil, fmt.Errorf("failed to render preview document: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizes ui.HTML and writes the preview page to path
func WriteDocument(path string, ui client.GeneratedUI) error {
	doc, err := Document(Sanitize(ui.HTML))
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create preview directory: %w", err)
		}
	}

	if err := os.WriteFile(path, doc, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write preview document: %w", err)
	}

	return nil
}
