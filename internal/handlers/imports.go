package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"techtrack-api/pkg/importer"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ImportsHandler handles Excel import operations
type ImportsHandler struct {
	Target   importer.Target
	Mapping  *importer.Mapping
	MaxBytes int64
	Logger   *zap.Logger
}

// NewImportsHandler creates a new imports handler
func NewImportsHandler(target importer.Target, logger *zap.Logger) *ImportsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportsHandler{
		Target:   target,
		MaxBytes: 20 << 20, // 20 MB
		Logger:   logger,
	}
}

// UploadExcel handles Excel file uploads for asset import
func (h *ImportsHandler) UploadExcel(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)

	if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "content-type must be multipart/form-data")
		return
	}

	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid multipart form: "+err.Error())
		return
	}

	dryRun := r.FormValue("dry_run") == "true"
	maxErrors := importer.DefaultMaxErrors
	if v := r.FormValue("max_errors"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxErrors = n
		}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "file is required: "+err.Error())
		return
	}
	defer file.Close()

	if !isXLSX(header) {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "only .xlsx files are accepted")
		return
	}

	sum, impErr := importer.ImportExcel(r.Context(), h.Target, file, importer.ImportOptions{
		Mapping:   h.Mapping,
		DryRun:    dryRun,
		MaxErrors: maxErrors,
	})
	if impErr != nil {
		h.Logger.Warn("excel import failed",
			zap.String("file", header.Filename),
			zap.Int("inserted", sum.Inserted),
			zap.Int("errors", sum.Errors),
			zap.Error(impErr),
		)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error": impErr.Error(),
			"code":  "IMPORT_FAILED",
			"data":  sum,
		})
		return
	}

	h.Logger.Info("excel import",
		zap.String("file", header.Filename),
		zap.Bool("dry_run", dryRun),
		zap.Int("inserted", sum.Inserted),
		zap.Int("errors", sum.Errors),
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"data": sum,
		"meta": map[string]any{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// isXLSX checks if the uploaded file is an Excel .xlsx file
func isXLSX(h *multipart.FileHeader) bool {
	return strings.HasSuffix(strings.ToLower(h.Filename), ".xlsx")
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]string{"error": msg, "code": code})
}
