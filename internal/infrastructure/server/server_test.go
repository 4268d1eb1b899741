package server

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/retrodesk/internal/domain/catalog"
	"github.com/GriffinCanCode/retrodesk/internal/domain/desktop"
	"github.com/GriffinCanCode/retrodesk/internal/infrastructure/config"
	"github.com/GriffinCanCode/retrodesk/internal/infrastructure/logging"
)

const notesManifest = `programs:
  - id: notes
    title: notes.txt
    width: 420
    body:
      - "Things to build next."
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.yaml"), []byte(notesManifest), 0o644))

	cfg := config.Default()
	cfg.RateLimit.Enabled = false
	cfg.Desktop.CatalogDir = dir
	cfg.Desktop.IconsDir = t.TempDir()
	cfg.Desktop.StartupPrograms = []string{"hello-world", "notes"}
	cfg.Server.ShutdownTimeout = 2 * time.Second
	return cfg
}

func startServer(t *testing.T, cfg *config.Config) (*Server, *httptest.Server) {
	t.Helper()

	srv, err := New(cfg, logging.NewNop())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.tracer.Close()
	})
	return srv, ts
}

func TestLoadCatalog(t *testing.T) {
	cat, err := LoadCatalog("", nil)
	require.NoError(t, err)
	assert.Equal(t, catalog.Default().Len(), cat.Len())

	cat, err = LoadCatalog(testConfig(t).Desktop.CatalogDir, logging.NewNop().Logger)
	require.NoError(t, err)
	notes, ok := cat.Get("notes")
	require.True(t, ok)
	assert.Equal(t, 420, notes.Width)
}

func TestHTTPRoutes(t *testing.T) {
	srv, ts := startServer(t, testConfig(t))
	assert.Equal(t, 3, srv.Catalog().Len())

	client := resty.New().SetBaseURL(ts.URL)

	tests := []struct {
		name        string
		path        string
		wantStatus  int
		contentType string
		contains    string
	}{
		{"desktop", "/", 200, "text/html", "notes.txt"},
		{"archive", "/archive", 200, "text/html", "BotSauce"},
		{"script", "/desktop.js", 200, "text/javascript", "pointer_down"},
		{"programs", "/programs", 200, "application/json", `"id":"notes"`},
		{"program", "/programs/archive", 200, "application/json", "archived.tar.gz"},
		{"health", "/health", 200, "application/json", `"status":"healthy"`},
		{"prometheus", "/metrics", 200, "text/plain", "retrodesk_http_requests_total"},
		{"metrics json", "/metrics/json", 200, "application/json", "total_requests"},
		{"missing icon", "/icons/none.png", 404, "application/json", "icon not found"},
		{"not found", "/nope", 404, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.R().Get(tt.path)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode())
			if tt.contentType != "" {
				assert.True(t, strings.HasPrefix(resp.Header().Get("Content-Type"), tt.contentType),
					"content type %q", resp.Header().Get("Content-Type"))
			}
			if tt.contains != "" {
				assert.Contains(t, resp.String(), tt.contains)
			}
			assert.NotEmpty(t, resp.Header().Get("X-Trace-ID"))
		})
	}
}

func TestCompression(t *testing.T) {
	_, ts := startServer(t, testConfig(t))
	client := resty.New().SetBaseURL(ts.URL)

	resp, err := client.R().SetHeader("Accept-Encoding", "gzip").Get("/")
	require.NoError(t, err)
	assert.Equal(t, "gzip", resp.Header().Get("Content-Encoding"))
	assert.Contains(t, resp.String(), "hello-world")

	cfg := testConfig(t)
	cfg.Compression.Enabled = false
	_, plain := startServer(t, cfg)

	resp, err = resty.New().SetBaseURL(plain.URL).R().SetHeader("Accept-Encoding", "gzip").Get("/")
	require.NoError(t, err)
	assert.Empty(t, resp.Header().Get("Content-Encoding"))
}

func TestRateLimitedRoutes(t *testing.T) {
	cfg := testConfig(t)
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RequestsPerSecond = 1
	cfg.RateLimit.Burst = 2
	_, ts := startServer(t, cfg)

	client := resty.New().SetBaseURL(ts.URL)
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := client.R().Get("/health")
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode())
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
}

func TestDesktopSessionOverCompressedServer(t *testing.T) {
	_, ts := startServer(t, testConfig(t))

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var r struct {
		Type     string           `json:"type"`
		HTML     string           `json:"html"`
		Snapshot desktop.Snapshot `json:"snapshot"`
	}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&r))
	assert.Equal(t, "render", r.Type)
	require.Len(t, r.Snapshot.Windows, 2)
	assert.Equal(t, "notes.txt", r.Snapshot.Windows[1].Title)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "toggle_maximize", "index": 1}))
	require.NoError(t, conn.ReadJSON(&r))
	assert.True(t, r.Snapshot.Windows[1].Maximized)
	assert.Contains(t, r.HTML, "width:100%")
}

func TestShutdown(t *testing.T) {
	srv, err := New(testConfig(t), nil)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	_, _, err = conn.ReadMessage()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}
