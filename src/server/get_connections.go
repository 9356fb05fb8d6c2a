package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"userconnections/src/domain"
)

func (s *Server) GetConnections(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		http.Error(w, "User ID is required", http.StatusBadRequest)
		return
	}

	view, err := s.connectionsService.GetConnections(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, domain.ErrUserNotFound.Error(), http.StatusNotFound)
			return
		}

		log.Printf("ERROR: Failed to get connections for %q: %v", userID, err)

		http.Error(w, domain.ErrUnavailableServer.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(MapViewToResponse(view)); err != nil {
		log.Printf("ERROR: Failed to write JSON response: %v", err)
	}
}
