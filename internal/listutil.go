package internal

import (
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Error codes returned in the code field of error bodies
const (
	CodeInvalidJSON      = "INVALID_JSON"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeQueryInFlight    = "QUERY_IN_PROGRESS"
	CodeInternal         = "INTERNAL"
)

// listParams holds common query parameters for list endpoints
type listParams struct {
	q      string
	format string
}

// parseListParams parses q and format from the request. The search term
// is used exactly as typed.
func parseListParams(r *http.Request) listParams {
	values := r.URL.Query()

	return listParams{
		q:      values.Get("q"),
		format: strings.ToLower(strings.TrimSpace(values.Get("format"))),
	}
}

type listMeta struct {
	Total int    `json:"total"`
	Q     string `json:"q,omitempty"`
}

type listResponse struct {
	Data interface{} `json:"data"`
	Meta listMeta    `json:"meta"`
}

// sendListResponse writes {data, meta} with the filtered total
func sendListResponse(w http.ResponseWriter, data interface{}, total int, params listParams) {
	writeJSON(w, http.StatusOK, listResponse{
		Data: data,
		Meta: listMeta{Total: total, Q: params.q},
	})
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Error: msg, Code: code})
}
