package datastream

import (
	"io"
	"net/http"
	"strings"

	"github.com/paddockai/paddock/pkg/logger"
)

// DefaultChunkSize is the slice width used when an already-complete answer
// has to be replayed as an incremental stream.
const DefaultChunkSize = 40

var (
	escaper   = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	unescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`, `\n`, "\n")
)

// Escape prepares a text delta for inclusion inside a frame's quoted payload.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape reverses Escape. Clients reconstruct the full answer by
// concatenating the unescaped payloads of every frame in order.
func Unescape(s string) string {
	return unescaper.Replace(s)
}

// Frame wraps a text delta in the wire envelope: 0:"<escaped>"\n.
// The 0: prefix is the text-delta marker the client protocol expects and
// must be preserved byte for byte.
func Frame(delta string) string {
	return `0:"` + Escape(delta) + "\"\n"
}

// Split cuts text into chunks of at most size runes, preserving order.
// Splitting on rune boundaries keeps multi-byte characters intact.
func Split(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	runes := []rune(text)
	chunks := make([]string, 0, len(runes)/size+1)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// Writer emits framed text deltas to an output stream, flushing after
// every frame when the destination supports it. Frames are written by a
// single caller in generation order.
type Writer struct {
	dst     io.Writer
	flusher http.Flusher
}

func NewWriter(dst io.Writer) *Writer {
	w := &Writer{dst: dst}
	if f, ok := dst.(http.Flusher); ok {
		w.flusher = f
	}
	return w
}

// WriteDelta frames a single text delta and writes it out. Empty deltas
// are dropped rather than framed.
func (w *Writer) WriteDelta(delta string) error {
	if delta == "" {
		return nil
	}
	if _, err := io.WriteString(w.dst, Frame(delta)); err != nil {
		logger.Error(logger.STREAM, "Failed to write frame: %v", err)
		return err
	}
	if w.flusher != nil {
		w.flusher.Flush()
	}
	return nil
}

// WriteText replays a fully-resolved answer as a sequence of fixed-size
// framed chunks, in original order.
func (w *Writer) WriteText(text string) error {
	for _, chunk := range Split(text, DefaultChunkSize) {
		if err := w.WriteDelta(chunk); err != nil {
			return err
		}
	}
	return nil
}
