package cms

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

// smallest valid PNG header followed by IHDR chunk start
var pngHead = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestProbeImage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			if r.Header.Get("Range") == "" {
				t.Errorf("probe must request range")
			}
			w.WriteHeader(http.StatusPartialContent)
			_, _ = w.Write(pngHead)
		case "/page.html":
			_, _ = w.Write([]byte("<html><body>not an image</body></html>"))
		default:
			http.NotFound(w, r)
		}
	}, nil)
	base := c.Endpoint()[:len(c.Endpoint())-len("/v2021-10-21/data/query/production")]

	if err := c.ProbeImage(context.Background(), base+"/ok.png"); err != nil {
		t.Fatalf("ProbeImage(ok) = %v", err)
	}

	for _, path := range []string{"/page.html", "/missing.png"} {
		err := c.ProbeImage(context.Background(), base+path)
		if !errors.Is(err, ErrImageLoad) {
			t.Fatalf("ProbeImage(%s) = %v, want ErrImageLoad", path, err)
		}
	}

	var ie *ImageLoadError
	if err := c.ProbeImage(context.Background(), base+"/missing.png"); !errors.As(err, &ie) || ie.Status != http.StatusNotFound {
		t.Fatalf("expected status in error, got %v", err)
	}
	if err := c.ProbeImage(context.Background(), ""); !errors.Is(err, ErrImageLoad) {
		t.Fatalf("empty url must fail")
	}
}
