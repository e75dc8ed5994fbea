package present

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"folio/cms"
	"folio/config"
	"folio/state"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

// backend serves writing fixture for slug "catatan-pagi", null for any
// other slug and 500 for "boom". Images are served under /images/, except
// for gone.png.
type backend struct {
	srv     *httptest.Server
	queries atomic.Int32
}

func newBackend(t *testing.T) *backend {
	t.Helper()

	fixture, err := os.ReadFile("testdata/writing.json")
	if err != nil {
		t.Fatalf("unable to read fixture: %v", err)
	}

	b := &backend{}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/images/") {
			if strings.HasSuffix(r.URL.Path, "/gone.png") {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(pngHeader)
			return
		}

		b.queries.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("$slug") {
		case `"catatan-pagi"`:
			doc := strings.ReplaceAll(string(fixture), "BASE", b.srv.URL)
			_, _ = w.Write([]byte(`{"ms": 2, "result": ` + doc + `}`))
		case `"boom"`:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error": {"description": "dataset unavailable", "type": "internal"}}`))
		default:
			_, _ = w.Write([]byte(`{"ms": 1, "result": null}`))
		}
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func newEnv(t *testing.T, b *backend) *state.LocalEnv {
	t.Helper()

	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("unable to load default configuration: %v", err)
	}
	cfg.Backend.BaseURL = b.srv.URL
	cfg.Render.TimeZone = "UTC"
	cfg.Tooltip.HoverDelay = 20 * time.Millisecond

	env := state.EnvFromContext(state.ContextWithEnv(context.Background()))
	env.Cfg = cfg
	env.Log = zaptest.NewLogger(t)
	env.Stdout = new(bytes.Buffer)
	return env
}

func newClient(t *testing.T, env *state.LocalEnv) *cms.Client {
	t.Helper()

	client, err := cms.NewClient(&env.Cfg.Backend, nil, env.Log)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func newSession(t *testing.T, env *state.LocalEnv) *Session {
	t.Helper()

	sess := NewSession(env, newClient(t, env))
	t.Cleanup(sess.Close)
	return sess
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}
