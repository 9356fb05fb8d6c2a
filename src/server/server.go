package server

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"userconnections/src/services/connections"

	"time"
)

// Server representa o servidor HTTP da API
type Server struct {
	logger             *slog.Logger
	server             *http.Server
	mux                *http.ServeMux
	port               int
	connectionsService *connections.ConnectionsService
}

// NewServer cria uma nova instância do servidor
func NewServer(
	logger *slog.Logger,
	port int,
	connectionsService *connections.ConnectionsService,
) *Server {
	server := &Server{
		mux:                http.NewServeMux(),
		port:               port,
		logger:             logger,
		connectionsService: connectionsService,
	}

	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      server.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Rota de escrita (reconciliação)
	server.mux.HandleFunc("POST /v1/connections", server.CreateConnections)

	// Rota de leitura (projeção)
	server.mux.HandleFunc("GET /v1/connections/{userId}", server.GetConnections)

	return server
}

// Start inicia o servidor HTTP
func (s *Server) Start() error {
	s.logger.Info("Server started", "port", s.port)

	return s.server.ListenAndServe()
}

// Shutdown encerra o servidor HTTP de forma graciosa
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
