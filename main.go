package main

import (
	"net/http"
	"os"
	"time"

	"go-partycourse-server/pkg/server"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	srv := server.NewServer()

	router := mux.NewRouter()
	router.HandleFunc("/health", srv.HandleHealth).Methods(http.MethodGet)
	router.HandleFunc("/stats", srv.HandleStats).Methods(http.MethodGet)
	router.HandleFunc("/ws", srv.HandleWebSocket)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Info().Str("port", port).Msg("starting server")
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal().Err(err).Msg("listen failed")
	}
}
