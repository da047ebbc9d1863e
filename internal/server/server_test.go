package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/seqdiag/pkg/cache"
	"github.com/matzehuels/seqdiag/pkg/observability"
	"github.com/matzehuels/seqdiag/pkg/pipeline"
	"github.com/matzehuels/seqdiag/pkg/render"
)

const login = `title Login
actor User
participant Server
User ->+ Server: credentials
alt valid
  Server -->> User: token
else invalid
  Server -->> User: 401
end
deactivate Server
`

func newTestServer(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	runner := pipeline.NewRunner(c, nil, nil)
	t.Cleanup(func() { _ = runner.Close() })
	return New(runner, nil, opts...).Handler()
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var b errorBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&b))
	return b
}

func TestRenderSVG(t *testing.T) {
	h := newTestServer(t)

	w := do(h, http.MethodPost, "/render", login)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Equal(t, "miss", w.Header().Get(headerCache))
	assert.True(t, strings.HasPrefix(w.Body.String(), "<svg"))
	assert.Contains(t, w.Body.String(), "credentials")
	assert.NotEmpty(t, w.Header().Get("ETag"))

	again := do(h, http.MethodPost, "/render", login)
	require.Equal(t, http.StatusOK, again.Code)
	assert.Equal(t, "hit", again.Header().Get(headerCache))
	assert.Equal(t, w.Body.String(), again.Body.String())
}

func TestRenderOptions(t *testing.T) {
	h := newTestServer(t)

	w := do(h, http.MethodPost, "/render?format=json", login)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var g struct {
		Lanes []json.RawMessage `json:"lanes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &g))
	assert.Len(t, g.Lanes, 2)

	w = do(h, http.MethodPost, "/render?id=login", login)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="login"`)
}

func TestRenderErrors(t *testing.T) {
	h := newTestServer(t, WithMaxBodyBytes(512))

	tests := []struct {
		name   string
		target string
		body   string
		status int
		code   string
		line   int
	}{
		{"syntax", "/render", "A -> B\nend\n", http.StatusUnprocessableEntity, "SYNTAX_ERROR", 2},
		{"unterminated", "/render", "A -> B\nloop forever\nA -> B\n", http.StatusUnprocessableEntity, "SYNTAX_ERROR", 2},
		{"lexer", "/render", "A -> \"B: hi\n", http.StatusUnprocessableEntity, "SYNTAX_ERROR", 1},
		{"empty", "/render", "", http.StatusBadRequest, "INVALID_INPUT", 0},
		{"format", "/render?format=gif", login, http.StatusBadRequest, "INVALID_FORMAT", 0},
		{"id", "/render?id=9lives", login, http.StatusBadRequest, "INVALID_ID_PREFIX", 0},
		{"too large", "/render", strings.Repeat("A -> B: x\n", 100), http.StatusRequestEntityTooLarge, "TOO_LARGE", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, http.MethodPost, tt.target, tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			b := decodeError(t, w)
			assert.Equal(t, tt.code, b.Code)
			assert.Equal(t, tt.line, b.Line)
			assert.NotEmpty(t, b.Message)
		})
	}
}

func TestRenderSyntaxErrorMessage(t *testing.T) {
	h := newTestServer(t)
	w := do(h, http.MethodPost, "/render", "alt ok\nA -> B\n")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	b := decodeError(t, w)
	assert.Equal(t, "line 1: unterminated alt block: reached end of input", b.Message)
}

func TestRenderPNGWithoutConverter(t *testing.T) {
	if render.Available() {
		t.Skip("rsvg-convert is installed")
	}
	h := newTestServer(t)
	w := do(h, http.MethodPost, "/render?format=png", login)
	require.Equal(t, http.StatusNotImplemented, w.Code)
	assert.Equal(t, "UNSUPPORTED", decodeError(t, w).Code)
}

func TestParse(t *testing.T) {
	h := newTestServer(t)
	w := do(h, http.MethodPost, "/parse", login+"participant User\n")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var s pipeline.Summary
	require.NoError(t, json.NewDecoder(w.Body).Decode(&s))
	assert.Equal(t, "Login", s.Title)
	require.Len(t, s.Participants, 2)
	assert.Equal(t, "actor", s.Participants[0].Kind)
	assert.Equal(t, 3, s.Messages)
	assert.Len(t, s.Warnings, 1)
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t)
	w := do(h, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRouting(t *testing.T) {
	h := newTestServer(t)

	w := do(h, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, w).Code)

	w = do(h, http.MethodGet, "/render", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	// metrics are only mounted when configured
	w = do(h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestID(t *testing.T) {
	h := newTestServer(t)

	w := do(h, http.MethodGet, "/healthz", "")
	assert.Len(t, w.Header().Get(HeaderRequestID), 36)

	const id = "0b6c8a5e-4f1f-4e7a-9b0a-8d1c2e3f4a5b"
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, id)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(HeaderRequestID))

	req.Header.Set(HeaderRequestID, "not a uuid")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, "not a uuid", rec.Header().Get(HeaderRequestID))
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := observability.NewPrometheus(reg)
	observability.SetHTTPHooks(p)
	observability.SetPipelineHooks(p)
	observability.SetCacheHooks(p)
	defer observability.Reset()

	h := newTestServer(t, WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	require.Equal(t, http.StatusOK, do(h, http.MethodPost, "/render", login).Code)
	require.Equal(t, http.StatusUnprocessableEntity, do(h, http.MethodPost, "/render", "end\n").Code)

	w := do(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `seqdiag_http_requests_total{code="200",method="POST",route="/render"} 1`)
	assert.Contains(t, body, `seqdiag_http_requests_total{code="422",method="POST",route="/render"} 1`)
	assert.Contains(t, body, `seqdiag_stage_duration_seconds`)
	assert.Contains(t, body, `seqdiag_cache_operations_total`)
}
