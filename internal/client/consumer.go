package client

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
	"unicode/utf8"
)

const defaultReadSize = 4096

// accumulates a streamed completion and parses it once the stream ends
type Consumer struct {
	readSize int
}

func NewConsumer() *Consumer {
	return &Consumer{readSize: defaultReadSize}
}

// reads r until EOF, handing each decoded chunk to onChunk as it arrives.
// multi-byte characters split across reads are held back until complete
func (c *Consumer) Consume(r io.Reader, onChunk func(string)) (*GeneratedUI, error) {
	text, err := c.accumulate(r, onChunk)
	if err != nil {
		return nil, err
	}

	return ParseGeneratedUI(text)
}

func (c *Consumer) accumulate(r io.Reader, onChunk func(string)) (string, error) {
	size := c.readSize
	if size <= 0 {
		size = defaultReadSize
	}

	var acc strings.Builder
	var pending []byte
	buf := make([]byte, size)

	emit := func(b []byte) {
		if len(b) == 0 {
			return
		}

		chunk := string(b)
		acc.WriteString(chunk)

		if onChunk != nil {
			onChunk(chunk)
		}
	}

	for {
		n, err := r.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)

			complete := completeRunes(pending)
			emit(pending[:complete])
			pending = append(pending[:0], pending[complete:]...)
		}

		if errors.Is(err, io.EOF) {
			emit(pending)
			return acc.String(), nil
		}

		if err != nil {
			emit(pending)
			return "", &StreamError{Partial: acc.String(), Err: err}
		}
	}
}

// length of the longest prefix of b that does not end inside a UTF-8 sequence
func completeRunes(b []byte) int {
	// a rune is at most utf8.UTFMax bytes, so only the tail needs checking
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if utf8.FullRune(b[i:]) {
				return len(b)
			}
			return i
		}
	}

	return len(b)
}

// parses the accumulated completion; tolerates surrounding whitespace and a markdown code fence
func ParseGeneratedUI(text string) (*GeneratedUI, error) {
	cleaned := stripCodeFence(strings.TrimSpace(text))

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, &ParseError{Raw: text, Err: err}
	}

	htmlRaw, hasHTML := fields["html"]
	reactRaw, hasReact := fields["react"]

	if !hasHTML && !hasReact {
		return nil, &ParseError{Raw: text, Err: ErrMissingFields}
	}

	ui := &GeneratedUI{}

	if hasHTML {
		if err := json.Unmarshal(htmlRaw, &ui.HTML); err != nil {
			return nil, &ParseError{Raw: text, Err: err}
		}
	}

	if hasReact {
		if err := json.Unmarshal(reactRaw, &ui.React); err != nil {
			return nil, &ParseError{Raw: text, Err: err}
		}
	}

	return ui, nil
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}

	// drop the opening fence line, including any language tag
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	} else {
		return s
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")

	return strings.TrimSpace(s)
}
