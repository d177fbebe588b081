package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"techtrack-api/internal/inventory"
	"techtrack-api/pkg/importer"
)

func xlsxBytes(t *testing.T, rows [][]string) []byte {
	t.Helper()
	wb := xlsx.NewFile()
	sheet, err := wb.AddSheet("Inventory")
	require.NoError(t, err)
	for _, cells := range rows {
		row := sheet.AddRow()
		for _, v := range cells {
			row.AddCell().SetString(v)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, wb.Write(&buf))
	return buf.Bytes()
}

func uploadRequest(t *testing.T, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if filename != "" {
		fw, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/imports/excel", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

var sheetRows = [][]string{
	{"Name", "Vendor", "Purchase Date", "Cost"},
	{"MacBook Air", "Apple", "2024-05-01", "1299"},
	{"Desk Phone", "", "2024-05-01", "80"},
}

func TestImportsHandler_UploadExcel(t *testing.T) {
	t.Run("Rejects non-multipart content type", func(t *testing.T) {
		handler := NewImportsHandler(inventory.NewStore(), nil)
		req := httptest.NewRequest("POST", "/imports/excel", nil)
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		handler.UploadExcel(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "content-type must be multipart/form-data")
	})

	t.Run("Rejects missing file", func(t *testing.T) {
		handler := NewImportsHandler(inventory.NewStore(), nil)
		req := uploadRequest(t, "", nil, map[string]string{"dry_run": "true"})

		w := httptest.NewRecorder()
		handler.UploadExcel(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "file is required")
	})

	t.Run("Rejects non-xlsx file", func(t *testing.T) {
		handler := NewImportsHandler(inventory.NewStore(), nil)
		req := uploadRequest(t, "test.xls", []byte("fake excel content"), nil)

		w := httptest.NewRecorder()
		handler.UploadExcel(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "only .xlsx files are accepted")
	})

	t.Run("Reports unreadable workbook", func(t *testing.T) {
		handler := NewImportsHandler(inventory.NewStore(), nil)
		req := uploadRequest(t, "test.xlsx", []byte("fake excel content"), nil)

		w := httptest.NewRecorder()
		handler.UploadExcel(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "IMPORT_FAILED")
	})

	t.Run("Imports valid rows", func(t *testing.T) {
		store := inventory.NewStore()
		handler := NewImportsHandler(store, nil)
		req := uploadRequest(t, "assets.xlsx", xlsxBytes(t, sheetRows), nil)

		w := httptest.NewRecorder()
		handler.UploadExcel(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Data importer.ImportSummary `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Data.Inserted)
		assert.Equal(t, 1, resp.Data.Errors)
		assert.False(t, resp.Data.DryRun)

		require.Equal(t, 1, store.Len())
		assert.Equal(t, "MacBook Air", store.List()[0].Name)
	})

	t.Run("Dry run leaves store untouched", func(t *testing.T) {
		store := inventory.NewStore()
		handler := NewImportsHandler(store, nil)
		req := uploadRequest(t, "assets.xlsx", xlsxBytes(t, sheetRows), map[string]string{"dry_run": "true"})

		w := httptest.NewRecorder()
		handler.UploadExcel(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"dry_run":true`)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("Stops at max_errors", func(t *testing.T) {
		store := inventory.NewStore()
		handler := NewImportsHandler(store, nil)
		req := uploadRequest(t, "assets.xlsx", xlsxBytes(t, sheetRows), map[string]string{"max_errors": "1"})

		w := httptest.NewRecorder()
		handler.UploadExcel(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "too many errors")
		// rows before the limit are kept
		assert.Equal(t, 1, store.Len())
	})
}

func TestIsXLSX(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected bool
	}{
		{"Valid xlsx", "test.xlsx", true},
		{"Valid xlsx uppercase", "TEST.XLSX", true},
		{"Valid xlsx mixed case", "Test.XlSx", true},
		{"Invalid xls", "test.xls", false},
		{"Invalid xlsm", "test.xlsm", false},
		{"No extension", "test", false},
		{"Empty filename", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := &multipart.FileHeader{Filename: tt.filename}
			assert.Equal(t, tt.expected, isXLSX(header))
		})
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	writeError(w, http.StatusBadRequest, "INVALID_INPUT", "nope")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "nope", response["error"])
	assert.Equal(t, "INVALID_INPUT", response["code"])
}
