package chat

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/paddockai/paddock/internal/services/chat"
	"github.com/paddockai/paddock/internal/services/chat/models"
	"github.com/paddockai/paddock/pkg/datastream"
	"github.com/paddockai/paddock/pkg/httpext"
)

const noUserMessage = "No user message provided."

// HandleChatCompletions runs the retrieval-augmented pipeline for one
// conversation and streams the answer back as framed text deltas.
func HandleChatCompletions(chatService chat.Service, w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("Client sent malformed JSON request")
		httpext.JsonError(w, noUserMessage, http.StatusBadRequest)
		return
	}

	// use a single instance of Validate, it caches struct info
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		log.Warn().Err(err).Msg("Request validation failed")
		httpext.JsonError(w, noUserMessage, http.StatusBadRequest)
		return
	}

	if len(req.Messages) == 0 || strings.TrimSpace(req.Messages[len(req.Messages)-1].Text()) == "" {
		log.Warn().Msg("Client sent no usable user message")
		httpext.JsonError(w, noUserMessage, http.StatusBadRequest)
		return
	}

	if !chatService.Ready() {
		log.Error().Msg("No generation provider configured")
		httpext.JsonError(w, "No generation provider configured.", http.StatusBadRequest)
		return
	}

	log.Info().
		Int("message_count", len(req.Messages)).
		Str("client_ip", r.RemoteAddr).
		Msg("Received chat completions request")

	stream := chatService.ProcessChat(r.Context(), req.Messages)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	streamResponse(w, stream)
}

// streamResponse pipes the delta stream through the framer. An empty
// stream degrades to the fixed fallback answer; a mid-stream failure
// after partial output closes the stream where it stands so the client
// never sees a corrupted tail.
func streamResponse(w http.ResponseWriter, stream chat.Stream) {
	writer := datastream.NewWriter(w)
	emitted := 0

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("Panic while streaming response")
			if emitted == 0 {
				_ = writer.WriteText(chat.FallbackResponse)
			}
		}
	}()

	for {
		delta, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Int("frames", emitted).Msg("Answer stream failed mid-flight")
			break
		}
		if delta == "" {
			continue
		}
		if writeErr := writer.WriteDelta(delta); writeErr != nil {
			// Client is gone; nothing left to do.
			return
		}
		emitted++
	}

	if emitted == 0 {
		log.Warn().Msg("No answer produced - emitting fallback response")
		_ = writer.WriteText(chat.FallbackResponse)
	}

	log.Info().Int("frames", emitted).Msg("Chat completions stream closed")
}
