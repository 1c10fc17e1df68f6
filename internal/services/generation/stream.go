package generation

import (
	"io"

	openai "github.com/sashabaranov/go-openai"

	"github.com/paddockai/paddock/pkg/datastream"
)

// Stream is a lazy sequence of text deltas. Recv returns io.EOF when the
// answer is complete. Both a true provider token stream and a fully
// resolved one-shot answer are exposed through this interface, so
// consumers cannot tell which delivery mode produced the text.
type Stream interface {
	Recv() (string, error)
}

// textStream replays an already-complete answer as fixed-size chunks,
// preserving the incremental delivery experience for atomic providers.
type textStream struct {
	chunks []string
	next   int
}

// NewTextStream wraps a resolved answer in the Stream interface.
func NewTextStream(text string) Stream {
	return &textStream{chunks: datastream.Split(text, datastream.DefaultChunkSize)}
}

func (s *textStream) Recv() (string, error) {
	if s.next >= len(s.chunks) {
		return "", io.EOF
	}
	chunk := s.chunks[s.next]
	s.next++
	return chunk, nil
}

// sseStream adapts a provider server-sent-event completion stream,
// emitting each delta as soon as it arrives.
type sseStream struct {
	upstream *openai.ChatCompletionStream
}

func (s *sseStream) Recv() (string, error) {
	for {
		resp, err := s.upstream.Recv()
		if err != nil {
			s.upstream.Close()
			return "", err
		}
		if len(resp.Choices) == 0 {
			continue
		}
		if delta := resp.Choices[0].Delta.Content; delta != "" {
			return delta, nil
		}
	}
}
