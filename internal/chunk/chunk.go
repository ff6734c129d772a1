// Package chunk splits a document into bounded, labelled sections for
// delivery to a size-limited sink.
package chunk

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxLength is the default number of characters per chunk body.
const DefaultMaxLength = 500000

// ErrInvalidLength is returned for a non-positive chunk length.
var ErrInvalidLength = errors.New("chunk length must be positive")

const (
	pendingNote = "It is imperative not to respond until all sections have been provided."
	finalNote   = "All sections have been provided. You may proceed with the response."
)

// Chunk is one slice of the document. Index is 1-based.
type Chunk struct {
	Index int
	Total int
	Body  string
}

// Last reports whether c is the final chunk.
func (c Chunk) Last() bool {
	return c.Index == c.Total
}

// Marker is the line prepended to the body, without its newline.
func (c Chunk) Marker() string {
	note := pendingNote
	if c.Last() {
		note = finalNote
	}
	return fmt.Sprintf("# Clipboard section %d of %d. %s", c.Index, c.Total, note)
}

// Text is the marker line followed by the body.
func (c Chunk) Text() string {
	return c.Marker() + "\n" + c.Body
}

// Split cuts text into contiguous slices of at most maxLength characters.
// Slices may end mid-word or mid-fence. Empty text yields no chunks.
func Split(text string, maxLength int) ([]Chunk, error) {
	if maxLength <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, maxLength)
	}
	if text == "" {
		return nil, nil
	}

	var bodies []string
	for rest := text; rest != ""; {
		cut := byteOffset(rest, maxLength)
		bodies = append(bodies, rest[:cut])
		rest = rest[cut:]
	}

	chunks := make([]Chunk, len(bodies))
	for i, body := range bodies {
		chunks[i] = Chunk{Index: i + 1, Total: len(bodies), Body: body}
	}
	return chunks, nil
}

// Join strips markers and concatenates bodies.
func Join(texts []string) string {
	var b strings.Builder
	for _, t := range texts {
		if strings.HasPrefix(t, "# Clipboard section ") {
			if _, body, ok := strings.Cut(t, "\n"); ok {
				t = body
			} else {
				t = ""
			}
		}
		b.WriteString(t)
	}
	return b.String()
}

// byteOffset returns the byte index just past the first n runes of s.
func byteOffset(s string, n int) int {
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}

// Count returns how many chunks Split would produce.
func Count(text string, maxLength int) int {
	if maxLength <= 0 || text == "" {
		return 0
	}
	n := utf8.RuneCountInString(text)
	return (n + maxLength - 1) / maxLength
}
