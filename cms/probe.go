package cms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/h2non/filetype"
	"go.uber.org/zap"
)

// enough for every signature filetype knows about
const probeSize = 262

// ProbeImage checks that url serves something which looks like an image.
// Failure is always *ImageLoadError.
func (c *Client) ProbeImage(ctx context.Context, url string) error {
	if url == "" {
		return &ImageLoadError{URL: url, Err: errors.New("empty url")}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &ImageLoadError{URL: url, Err: err}
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=0-%d", probeSize-1))

	resp, err := c.http.Do(req)
	if err != nil {
		return &ImageLoadError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return &ImageLoadError{URL: url, Status: resp.StatusCode}
	}

	head, err := io.ReadAll(io.LimitReader(resp.Body, probeSize))
	if err != nil {
		return &ImageLoadError{URL: url, Err: err}
	}
	if !filetype.IsImage(head) {
		return &ImageLoadError{URL: url, Err: fmt.Errorf("content is not an image (%s)", resp.Header.Get("Content-Type"))}
	}

	kind, _ := filetype.Match(head)
	c.log.Debug("Image probed", zap.String("url", url), zap.String("type", kind.MIME.Value))
	return nil
}
