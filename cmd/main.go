package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/paddockai/paddock/internal/api/v1/handlers"
	v1mware "github.com/paddockai/paddock/internal/api/v1/middleware"
	"github.com/paddockai/paddock/internal/config"
	"github.com/paddockai/paddock/internal/services"
)

func main() {
	svcs, err := services.InitializeServices()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer svcs.Close()

	r := setupRouter(svcs)

	port := config.GetPort()
	log.Info().Str("port", port).Msg("Server starting")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal().Err(err).Msg("ListenAndServe error")
	}
}

func setupRouter(svcs *services.Services) *mux.Router {
	r := mux.NewRouter()
	r.Use(v1mware.RateLimit("global"))
	handlers.RegisterV1Routes(r, svcs)
	return r
}
