package internal

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"techtrack-api/internal/inventory"
	"techtrack-api/internal/models"
	"techtrack-api/pkg/importer"
)

// listAssets handles asset listing with the search filter
func (s *Server) listAssets(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	assets := inventory.Filter(s.Store.List(), params.q)
	views := inventory.Views(assets, s.Now())

	sendListResponse(w, views, len(views), params)
}

// getDraft returns the values a new entry form starts with
func (s *Server) getDraft(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, inventory.DefaultDraft())
}

// createAsset handles the add flow
func (s *Server) createAsset(w http.ResponseWriter, r *http.Request) {
	var d inventory.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidJSON, "invalid JSON")
		return
	}

	a, err := s.Store.Create(d)
	switch {
	case errors.Is(err, inventory.ErrIncompleteDraft):
		writeError(w, http.StatusUnprocessableEntity, CodeValidationFailed, err.Error())
		return
	case errors.Is(err, inventory.ErrInvalidDraft):
		writeError(w, http.StatusBadRequest, CodeInvalidInput, err.Error())
		return
	case err != nil:
		s.Logger.Error("create asset", zap.Error(err))
		writeError(w, http.StatusInternalServerError, CodeInternal, "could not create asset")
		return
	}

	writeJSON(w, http.StatusCreated, inventory.Views([]models.Asset{a}, s.Now())[0])
}

// deleteAsset removes an asset. Unknown ids succeed too.
func (s *Server) deleteAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.Store.Remove(id) {
		s.Logger.Debug("delete of unknown asset", zap.String("id", id))
	}
	w.WriteHeader(http.StatusNoContent)
}

// exportAssets streams the current inventory as a workbook
func (s *Server) exportAssets(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="inventory.xlsx"`)
	if err := importer.ExportExcel(w, s.Store.List()); err != nil {
		s.Logger.Error("export inventory", zap.Error(err))
	}
}
