// Package cms fetches writings from Sanity compatible content backend.
package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"folio/config"
	"folio/writing"
)

// maxResponseSize limits how much of backend response is read.
const maxResponseSize = 16 << 20

// Client performs single attempt queries, there is no retry and no caching.
// It is safe for concurrent use.
type Client struct {
	log     *zap.Logger
	rpt     *config.Report
	http    *http.Client
	limiter *rate.Limiter

	endpoint string
	project  string
	dataset  string
	token    config.SecretString
}

type Option func(*Client)

// WithHTTPClient replaces default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates client for configured backend, rpt may be nil.
func NewClient(cfg *config.BackendConfig, rpt *config.Report, log *zap.Logger, opts ...Option) (*Client, error) {
	base := cfg.BaseURL
	if base == "" {
		host := "api.sanity.io"
		if cfg.UseCDN {
			host = "apicdn.sanity.io"
		}
		base = "https://" + cfg.ProjectID + "." + host
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("bad backend base url %q", base)
	}

	c := &Client{
		log:      log.Named("cms"),
		rpt:      rpt,
		http:     &http.Client{Timeout: cfg.Timeout},
		endpoint: strings.TrimSuffix(u.String(), "/") + "/v" + strings.TrimPrefix(cfg.APIVersion, "v") + "/data/query/" + url.PathEscape(cfg.Dataset),
		project:  cfg.ProjectID,
		dataset:  cfg.Dataset,
		token:    cfg.Token,
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(1, int(cfg.RequestsPerSecond)))
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Endpoint returns query URL without parameters.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
	MS     int             `json:"ms"`
}

type errorResponse struct {
	Error struct {
		Description string `json:"description"`
		Type        string `json:"type"`
	} `json:"error"`
	Message string `json:"message"`
}

// FetchDocument retrieves writing by slug.
func (c *Client) FetchDocument(ctx context.Context, s string) (*writing.Document, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrInvalidSlug
	}
	if !slug.IsSlug(s) {
		c.log.Warn("Slug is not in canonical form, querying anyway", zap.String("slug", s))
	}

	id := uuid.NewString()
	log := c.log.With(zap.String("request", id), zap.String("slug", s))

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &NetworkError{Slug: s, Err: err}
		}
	}

	body, status, err := c.query(ctx, id, s)
	if err != nil {
		log.Debug("Backend request failed", zap.Int("status", status), zap.Error(err))
		return nil, &NetworkError{Slug: s, Status: status, Err: err}
	}
	c.rpt.StoreData("backend/"+s+".json", body)

	var resp queryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &NetworkError{Slug: s, Status: status, Err: fmt.Errorf("unable to decode response: %w", err)}
	}
	if len(resp.Result) == 0 || bytes.Equal(bytes.TrimSpace(resp.Result), []byte("null")) {
		log.Debug("Writing not found", zap.Int("ms", resp.MS))
		return nil, fmt.Errorf("writing %q: %w", s, ErrNotFound)
	}

	doc, err := writing.Parse(resp.Result, log)
	if err != nil {
		return nil, &NetworkError{Slug: s, Status: status, Err: err}
	}
	if doc.Slug == "" {
		doc.Slug = s
	}
	c.resolveAssets(doc)

	log.Debug("Writing fetched", zap.String("id", doc.ID), zap.Int("blocks", len(doc.Body)), zap.Int("ms", resp.MS))
	return doc, nil
}

func (c *Client) query(ctx context.Context, id, s string) ([]byte, int, error) {
	param, err := json.Marshal(s)
	if err != nil {
		return nil, 0, err
	}
	values := url.Values{}
	values.Set("query", writingQuery)
	values.Set("$slug", string(param))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", id)
	if c.token.IsSet() {
		req.Header.Set("Authorization", "Bearer "+c.token.Reveal())
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	c.log.Debug("Backend response",
		zap.String("request", id),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, errors.New(describeError(resp.StatusCode, body))
	}
	return body, resp.StatusCode, nil
}

func describeError(status int, body []byte) string {
	var e errorResponse
	if json.Unmarshal(body, &e) == nil {
		switch {
		case e.Error.Description != "":
			return e.Error.Description
		case e.Message != "":
			return e.Message
		}
	}
	return http.StatusText(status) + " (" + strconv.Itoa(status) + ")"
}
