package internal

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"techtrack-api/internal/config"
	"techtrack-api/internal/inventory"
	"techtrack-api/internal/models"
)

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// fakeAnalyst records queries and answers with a fixed reply
type fakeAnalyst struct {
	mu      sync.Mutex
	reply   string
	queries []string
	sizes   []int
}

func (f *fakeAnalyst) Query(_ context.Context, snapshot []models.Asset, text string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, text)
	f.sizes = append(f.sizes, len(snapshot))
	return f.reply
}

func newTestServer(t *testing.T, analyst *fakeAnalyst, enableMetrics bool) *Server {
	t.Helper()
	sample, err := inventory.SampleAssets()
	require.NoError(t, err)

	if analyst == nil {
		analyst = &fakeAnalyst{reply: "ok"}
	}
	cfg := &config.Config{EnableMetrics: enableMetrics}
	s := NewServer(cfg, inventory.NewStore(sample...), analyst, nil, nil)
	s.Now = func() time.Time { return testNow }
	return s
}

func do(t *testing.T, s *Server, method, target string, body []byte, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
