package internal

import (
	"net/http"

	"techtrack-api/internal/inventory"
)

// getDashboard returns the statistics of the whole inventory
func (s *Server) getDashboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, inventory.Summarize(s.Store.List(), s.Now()))
}
