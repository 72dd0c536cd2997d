package web

import (
	"encoding/json"
	"net/http"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/wagetrack/app/wage"
)

// handleWorkerInfo returns hourly wage and total hours of a worker as JSON.
// Unknown workers get zero values rather than an error.
func (s *Server) handleWorkerInfo(w http.ResponseWriter, r *http.Request) {
	workerID, err := parseWorkerID(r)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := s.store.Acquire(r.Context())
	if err != nil {
		log.Printf("[ERROR] %v", err)
		s.writeJSONError(w, http.StatusInternalServerError, "failed to access store")
		return
	}
	defer conn.Close()

	info, err := wage.GetWorkerInfo(r.Context(), conn, workerID)
	if err != nil {
		log.Printf("[ERROR] failed to get info for worker %d: %v", workerID, err)
		s.writeJSONError(w, http.StatusInternalServerError, "failed to load worker info")
		return
	}

	s.writeJSON(w, http.StatusOK, info)
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[WARN] failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes a JSON error response
func (s *Server) writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("[WARN] failed to encode JSON error response: %v", err)
	}
}
