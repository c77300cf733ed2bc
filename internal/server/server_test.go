package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/commitgraph/pkg/buildinfo"
	"github.com/matzehuels/commitgraph/pkg/cache"
	"github.com/matzehuels/commitgraph/pkg/errors"
	"github.com/matzehuels/commitgraph/pkg/pipeline"
	"github.com/matzehuels/commitgraph/pkg/render"
)

const flow = `
steps:
  - branch: master
  - commit: one
  - branch: develop
  - commit: feature
  - checkout: master
  - merge: develop
`

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newTestServer(t *testing.T, cfg Config) (*Server, *httptest.Server) {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = quietLogger()
	}
	s := New(cfg)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/yaml", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	var e errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, buildinfo.Version, body["version"])
	assert.Equal(t, buildinfo.Commit, body["commit"])
}

func TestPresets(t *testing.T) {
	_, ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/api/presets")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out []preset
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 2)
	names := map[string]preset{}
	for _, p := range out {
		names[p.Name] = p
	}
	assert.True(t, names["metro"].Default)
	assert.True(t, names["blackarrow"].Arrows)
	assert.False(t, names["metro"].Arrows)
}

func TestRenderFormats(t *testing.T) {
	_, ts := newTestServer(t, Config{})

	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"", "image/svg+xml", "<svg xmlns="},
		{"svg", "image/svg+xml", "<svg xmlns="},
		{"json", "application/json", "{"},
		{"txt", "text/plain; charset=utf-8", "* "},
		{"dot", "text/vnd.graphviz", "digraph G {"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			url := ts.URL + "/api/render"
			if tt.format != "" {
				url += "?format=" + tt.format
			}
			resp := post(t, url, flow)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.contentType, resp.Header.Get("Content-Type"))
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(body), tt.prefix), "body starts with %q", body[:min(len(body), 20)])
		})
	}
}

func TestRenderJSONBody(t *testing.T) {
	_, ts := newTestServer(t, Config{})

	resp := post(t, ts.URL+"/api/render?format=json&template=blackarrow", flow)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var d render.Data
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&d))
	assert.Equal(t, "blackarrow", d.Template.Name)
	assert.Len(t, d.Commits, 3)
	assert.Equal(t, 2, d.Columns)
}

func TestRenderCacheHeader(t *testing.T) {
	runner := pipeline.NewRunner(cache.NewMemoryCache(time.Minute), nil, quietLogger())
	_, ts := newTestServer(t, Config{Runner: runner})

	first := post(t, ts.URL+"/api/render", flow)
	require.Equal(t, http.StatusOK, first.StatusCode)
	assert.Equal(t, "miss", first.Header.Get("X-Cache"))

	second := post(t, ts.URL+"/api/render", flow)
	require.Equal(t, http.StatusOK, second.StatusCode)
	assert.Equal(t, "hit", second.Header.Get("X-Cache"))
}

func TestRenderErrors(t *testing.T) {
	_, ts := newTestServer(t, Config{})

	tests := []struct {
		name   string
		query  string
		body   string
		status int
		code   errors.Code
	}{
		{"unknown format", "?format=gif", flow, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad scale", "?format=png&scale=big", flow, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown template", "?template=neon", flow, http.StatusBadRequest, errors.ErrCodeInvalidTemplate},
		{"malformed script", "", "steps: [", http.StatusBadRequest, errors.ErrCodeInvalidScript},
		{"unknown key", "", "steps:\n  - rebase: master\n", http.StatusBadRequest, errors.ErrCodeInvalidScript},
		{"duplicate branch", "", "steps:\n  - branch: master\n  - branch: master\n", http.StatusConflict, errors.ErrCodeDuplicateBranch},
		{"self merge", "", "steps:\n  - branch: master\n  - commit: one\n  - merge: master\n", http.StatusUnprocessableEntity, errors.ErrCodeSelfMerge},
		{"missing branch", "", "steps:\n  - checkout: nowhere\n", http.StatusUnprocessableEntity, errors.ErrCodeBranchNotFound},
		{"file import", "", "steps:\n  - import: history.json\n", http.StatusBadRequest, errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/api/render"+tt.query, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			e := decodeError(t, resp)
			assert.Equal(t, tt.code, e.Code)
			assert.NotEmpty(t, e.Message)
		})
	}
}

func TestRenderBodyLimit(t *testing.T) {
	_, ts := newTestServer(t, Config{MaxBody: 16})

	resp := post(t, ts.URL+"/api/render", flow)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, errors.ErrCodeInvalidInput, decodeError(t, resp).Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFor(""))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.ErrCodeInternal))
	assert.Equal(t, http.StatusConflict, statusFor(errors.ErrCodeDuplicateTag))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(errors.ErrCodeNothingToMerge))
	assert.Equal(t, http.StatusNotFound, statusFor(errors.ErrCodeFileNotFound))
}

func TestInternalErrorsHideMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, io.ErrUnexpectedEOF)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var e errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&e))
	assert.Equal(t, "internal error", e.Message)
}

func TestLiveWithoutWatch(t *testing.T) {
	_, ts := newTestServer(t, Config{})

	for _, path := range []string{"/api/live", "/api/live/current"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLiveCurrent(t *testing.T) {
	path := writeScript(t, flow)
	s, ts := newTestServer(t, Config{Watch: path})

	resp, err := http.Get(ts.URL + "/api/live/current")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "before first render")

	s.rebuild(context.Background())

	resp, err = http.Get(ts.URL + "/api/live/current")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var msg Message
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&msg))
	assert.Equal(t, MessageRender, msg.Type)
	var d render.Data
	require.NoError(t, json.Unmarshal(msg.Data, &d))
	assert.Len(t, d.Commits, 3)
}

func TestLiveImportsRelativeToScript(t *testing.T) {
	dir := t.TempDir()
	records := `[{"hash": "a1", "parents": [], "subject": "imported", "refs": ["HEAD -> master"]}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "history.json"), []byte(records), 0o644))
	path := filepath.Join(dir, "flow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - import: history.json\n"), 0o644))

	s, _ := newTestServer(t, Config{Watch: path})
	s.rebuild(context.Background())

	msg, ok := s.live.current()
	require.True(t, ok)
	require.Equal(t, MessageRender, msg.Type, "error: %+v", msg.Error)
}

func TestLiveBroadcast(t *testing.T) {
	path := writeScript(t, flow)
	s, ts := newTestServer(t, Config{Watch: path})
	ctx := context.Background()
	s.rebuild(ctx)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, MessageRender, msg.Type, "joiners get the latest frame")

	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - commit: orphan\n"), 0o644))
	s.rebuild(ctx)

	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, MessageError, msg.Type)
	require.NotNil(t, msg.Error)
	assert.Equal(t, errors.ErrCodeNoHead, msg.Error.Code)
}
