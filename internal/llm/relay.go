package llm

import (
	"errors"
	"fmt"
	"io"
)

// returned (wrapped) when the downstream writer fails, usually a closed client
var ErrDownstream = errors.New("downstream write failed")

// copies every non-empty chunk from stream to w, calling flush after each write.
// returns the bytes written; a clean end of stream returns a nil error
func Relay(stream Stream, w io.Writer, flush func()) (int64, error) {
	var written int64

	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return written, nil
		}

		if err != nil {
			return written, fmt.Errorf("upstream stream failed: %w", err)
		}

		if chunk == "" {
			continue
		}

		n, err := io.WriteString(w, chunk)
		written += int64(n)

		if err != nil {
			return written, fmt.Errorf("%w: %v", ErrDownstream, err)
		}

		if flush != nil {
			flush()
		}
	}
}
