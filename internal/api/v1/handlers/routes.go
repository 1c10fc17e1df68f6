package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	v1chat "github.com/paddockai/paddock/internal/api/v1/handlers/chat"
	v1ws "github.com/paddockai/paddock/internal/api/v1/handlers/websocket"
	v1mware "github.com/paddockai/paddock/internal/api/v1/middleware"
	"github.com/paddockai/paddock/internal/services"
)

func RegisterV1Routes(router *mux.Router, services *services.Services) {
	// v1 routes
	v1 := router.PathPrefix("/v1").Subrouter()
	v1.Use(v1mware.Recover)

	// Chat v1 routes
	v1.Handle("/chat", v1mware.RateLimit("chat")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v1chat.HandleChatCompletions(services.GetChatService(), w, r)
	}))).Methods("POST")

	// WebSocket transport emitting the same frames as POST /v1/chat
	v1.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		v1ws.HandleChatSocket(services.GetChatService(), w, r)
	})
}
