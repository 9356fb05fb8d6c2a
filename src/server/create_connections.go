package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"userconnections/src/domain"
)

func (s *Server) CreateConnections(w http.ResponseWriter, r *http.Request) {
	var request CreateConnectionsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(request.UserID) == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	result, err := s.connectionsService.CreateConnections(r.Context(), request.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, domain.ErrUserNotFound.Error(), http.StatusNotFound)
			return
		}

		log.Printf("ERROR: Failed to create connections for %q: %v", request.UserID, err)

		if errors.Is(err, domain.ErrDirectoryUnavailable) {
			http.Error(w, domain.ErrDirectoryUnavailable.Error(), http.StatusInternalServerError)
			return
		}

		http.Error(w, domain.ErrSaveConnections.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(CreateConnectionsResponse(result)); err != nil {
		log.Printf("ERROR: Failed to write JSON response: %v", err)
	}
}
