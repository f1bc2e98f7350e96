package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/barnframe/pkg/building"
	"github.com/matzehuels/barnframe/pkg/cache"
	"github.com/matzehuels/barnframe/pkg/config"
	"github.com/matzehuels/barnframe/pkg/errors"
	"github.com/matzehuels/barnframe/pkg/observability"
	"github.com/matzehuels/barnframe/pkg/pipeline"
	"github.com/matzehuels/barnframe/pkg/space"
)

const shopJSON = `{
  "name": "shop",
  "dimensions": {"width": 40, "length": 30, "height": 14},
  "openings": [
    {"id": "bay", "kind": "rollupDoor", "wall": "front", "width": 30, "height": 10},
    {"id": "walk", "kind": "walkDoor", "wall": "left", "align": "left", "x_offset": 4, "width": 3, "height": 7}
  ]
}`

const shopTOML = `
name = "shop"

[dimensions]
width = 40.0
length = 30.0
height = 14.0

[[openings]]
id = "bay"
kind = "rollupDoor"
wall = "front"
width = 30.0
height = 10.0
`

func newTestServer(t *testing.T, logs io.Writer) *httptest.Server {
	t.Helper()
	c, err := cache.NewMemoryCache(32)
	require.NoError(t, err)

	logger := log.New(logs)
	runner := pipeline.NewRunner(c, nil, logger)
	cfg := config.Default().Server
	srv := httptest.NewServer(NewServer(runner, cfg, logger).Handler())
	t.Cleanup(func() {
		srv.Close()
		runner.Close()
	})
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, contentType, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, contentType, strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, io.Discard)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[HealthResponse](t, resp)
	assert.Equal(t, "ok", body.Status)
	assert.NotEmpty(t, body.Build.Version)
}

func TestBeams(t *testing.T) {
	srv := newTestServer(t, io.Discard)

	resp := post(t, srv, "/v1/beams", "application/json", shopJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "miss", resp.Header.Get("X-Cache"))

	res := decode[pipeline.BeamResult](t, resp)
	require.Len(t, res.Walls, 4)
	assert.Equal(t, building.WallFront, res.Walls[0].Wall)
	assert.NotEmpty(t, res.DesignHash)

	again := post(t, srv, "/v1/beams", "application/json", shopJSON)
	assert.Equal(t, "hit", again.Header.Get("X-Cache"))
}

func TestAnalyze(t *testing.T) {
	srv := newTestServer(t, io.Discard)

	resp := post(t, srv, "/v1/analyze", "application/json", shopJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "miss", resp.Header.Get("X-Cache"))

	res := decode[pipeline.Result](t, resp)
	require.NotNil(t, res.Beams)
	assert.Len(t, res.Beams.Walls, 4)
	assert.Len(t, res.Snapshot.DetectedOpenings, 2)
	assert.Equal(t, res.DesignHash, res.Beams.DesignHash)

	again := post(t, srv, "/v1/analyze", "application/json", shopJSON)
	assert.Equal(t, "hit", again.Header.Get("X-Cache"))
}

func TestSnapshotTOML(t *testing.T) {
	srv := newTestServer(t, io.Discard)

	resp := post(t, srv, "/v1/snapshot", "application/toml", shopTOML)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	snap := decode[space.Snapshot](t, resp)
	require.Len(t, snap.DetectedOpenings, 1)
	assert.Equal(t, "bay", snap.DetectedOpenings[0].Ref)
	assert.True(t, snap.DetectedOpenings[0].Impact.EngineeringRequired)
}

func TestValidate(t *testing.T) {
	srv := newTestServer(t, io.Discard)

	tests := []struct {
		width float64
		want  bool
	}{
		{35, true},
		{12, false},
	}
	for _, tt := range tests {
		body, err := json.Marshal(map[string]any{
			"design": json.RawMessage(shopJSON),
			"change": map[string]float64{"width": tt.width},
		})
		require.NoError(t, err)

		resp := post(t, srv, "/v1/validate", "application/json", string(body))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		res := decode[space.ModificationResult](t, resp)
		assert.Equal(t, tt.want, res.CanModify, "width %g: %v", tt.width, res.Violations)
		assert.Equal(t, tt.width, res.Proposed.Width)
	}
}

func TestValidateErrors(t *testing.T) {
	srv := newTestServer(t, io.Discard)

	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"missing design", `{"change": {"width": 10}}`, errors.ErrCodeInvalidInput},
		{"empty change", `{"design": ` + shopJSON + `, "change": {}}`, errors.ErrCodeInvalidInput},
		{"unknown field", `{"design": ` + shopJSON + `, "change": {"depth": 3}}`, errors.ErrCodeInvalidFormat},
		{"negative width", `{"design": ` + shopJSON + `, "change": {"width": -3}}`, errors.ErrCodeInvalidDimensions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, "/v1/validate", "application/json", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			body := decode[ErrorResponse](t, resp)
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.RequestID)
		})
	}
}

func TestProtection(t *testing.T) {
	srv := newTestServer(t, io.Discard)

	resp := post(t, srv, "/v1/protection", "application/json", shopJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	prot := decode[map[building.Wall]space.Protection](t, resp)
	assert.Len(t, prot, 4)
	assert.True(t, prot[building.WallFront].Locked)
	assert.Equal(t, []string{"bay"}, prot[building.WallFront].OpeningIDs)
}

func TestAccessGraph(t *testing.T) {
	srv := newTestServer(t, io.Discard)

	resp := post(t, srv, "/v1/access-graph", "application/json", shopJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/vnd.graphviz", resp.Header.Get("Content-Type"))
	dot, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(dot), `"bay" -- "walk"`)

	resp = post(t, srv, "/v1/access-graph?format=json&detailed=true", "application/json", shopJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	resp = post(t, srv, "/v1/access-graph?format=png", "application/json", shopJSON)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, errors.ErrCodeUnsupported, decode[ErrorResponse](t, resp).Code)

	resp = post(t, srv, "/v1/access-graph?detailed=maybe", "application/json", shopJSON)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInvalidDesign(t *testing.T) {
	srv := newTestServer(t, io.Discard)

	tests := []struct {
		name    string
		body    string
		code    errors.Code
		details int
	}{
		{"empty body", "", errors.ErrCodeInvalidInput, 0},
		{"bad json", "{", errors.ErrCodeInvalidFormat, 0},
		{"unknown field", `{"dimensions": {"width": 10, "length": 10, "height": 10}, "doors": []}`, errors.ErrCodeInvalidFormat, 0},
		{
			"two problems",
			`{"dimensions": {"width": 0, "length": 10, "height": 10}, "openings": [{"kind": "hatch", "wall": "front", "width": 1, "height": 1}]}`,
			errors.ErrCodeInvalidDimensions, 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, "/v1/snapshot", "application/json", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			body := decode[ErrorResponse](t, resp)
			assert.Equal(t, tt.code, body.Code)
			assert.GreaterOrEqual(t, len(body.Details), tt.details)
		})
	}
}

func TestBodyTooLarge(t *testing.T) {
	runner := pipeline.NewRunner(nil, nil, nil)
	cfg := config.Default().Server
	cfg.MaxBodyBytes = 16
	srv := httptest.NewServer(NewServer(runner, cfg, nil).Handler())
	defer srv.Close()

	resp := post(t, srv, "/v1/beams", "application/json", shopJSON)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[ErrorResponse](t, resp).Message, "exceeds 16 bytes")
}

func TestRoutingErrors(t *testing.T) {
	srv := newTestServer(t, io.Discard)

	resp, err := http.Get(srv.URL + "/v1/beams")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp2 := post(t, srv, "/v2/beams", "application/json", shopJSON)
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
	assert.Equal(t, errors.ErrCodeNotFound, decode[ErrorResponse](t, resp2).Code)
}

func TestRequestLogging(t *testing.T) {
	var logs syncBuffer
	srv := newTestServer(t, &logs)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/protection", strings.NewReader(shopJSON))
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "req-42")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	out := logs.String()
	assert.Contains(t, out, "route=/v1/protection")
	assert.Contains(t, out, "status=200")
	assert.Contains(t, out, "request_id=req-42")
}

func TestToResponse(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   errors.Code
		status int
	}{
		{"coded", errors.New(errors.ErrCodeInvalidOpening, "bad opening"), errors.ErrCodeInvalidOpening, http.StatusBadRequest},
		{"network", errors.New(errors.ErrCodeNetwork, "redis down"), errors.ErrCodeNetwork, http.StatusBadGateway},
		{"deadline", context.DeadlineExceeded, errors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{"plain", io.ErrUnexpectedEOF, errors.ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := toResponse(tt.err)
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, tt.status, statusFor(resp.Code))
		})
	}
	assert.Equal(t, "internal error", toResponse(io.ErrUnexpectedEOF).Message)
}

type httpRecorder struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
}

func (h *httpRecorder) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, method+" "+route+" "+http.StatusText(status))
}

func TestHTTPHooks(t *testing.T) {
	rec := &httpRecorder{}
	observability.SetHTTPHooks(rec)
	t.Cleanup(observability.Reset)

	srv := newTestServer(t, io.Discard)
	post(t, srv, "/v1/protection", "application/json", shopJSON)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []string{"POST /v1/protection OK"}, rec.routes)
}

// syncBuffer is a bytes.Buffer safe for the server goroutines and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
