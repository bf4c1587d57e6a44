// Package azsearch is a client for an Azure Cognitive Search compatible REST API.
package azsearch

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

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/biosearch/internal/domain"
	"github.com/kailas-cloud/biosearch/internal/domain/search/request"
	"github.com/kailas-cloud/biosearch/internal/domain/search/result"
	"github.com/kailas-cloud/biosearch/internal/logger"
	"github.com/kailas-cloud/biosearch/internal/metrics"
)

// DefaultAPIVersion is sent when Config.APIVersion is empty.
const DefaultAPIVersion = "2023-11-01"

// Operation labels for metrics and logs.
const (
	opSearch = "search"
	opCount  = "count"
	opPing   = "ping"
)

// Config holds the search service settings.
type Config struct {
	Endpoint   string
	APIKey     string
	APIVersion string
	// Timeout bounds each call on top of the caller's context. Zero means no extra bound.
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client talks to the remote search service. It never retries.
type Client struct {
	endpoint   string
	apiKey     string
	apiVersion string
	timeout    time.Duration
	http       *http.Client
	logger     *zap.Logger
}

// New creates a Client.
func New(cfg Config) (*Client, error) {
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint == "" {
		return nil, errors.New("search endpoint is required")
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid search endpoint: %w", err)
	}

	c := &Client{
		endpoint:   endpoint,
		apiKey:     cfg.APIKey,
		apiVersion: cfg.APIVersion,
		timeout:    cfg.Timeout,
		http:       cfg.HTTPClient,
		logger:     cfg.Logger,
	}
	if c.apiVersion == "" {
		c.apiVersion = DefaultAPIVersion
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c, nil
}

// Search executes a compiled request against index.
func (c *Client) Search(ctx context.Context, index string, req *request.Request) (*result.Page, error) {
	body, err := MarshalSearch(req)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	err = c.call(ctx, opSearch, index, http.MethodPost, c.indexURL(index, "docs/search"), body,
		func(r io.Reader) error { return json.NewDecoder(r).Decode(&resp) })
	if err != nil {
		return nil, err
	}

	page, err := resp.toPage(req.KeyField)
	if err != nil {
		return nil, fmt.Errorf("%w: decode search response: %w", domain.ErrGatewayFailure, err)
	}
	return page, nil
}

// Count returns the number of documents in index.
func (c *Client) Count(ctx context.Context, index string) (int64, error) {
	var n int64
	err := c.call(ctx, opCount, index, http.MethodGet, c.indexURL(index, "docs/$count"), nil,
		func(r io.Reader) error {
			raw, err := io.ReadAll(r)
			if err != nil {
				return err
			}
			n, err = strconv.ParseInt(strings.TrimSpace(strings.TrimPrefix(string(raw), "\ufeff")), 10, 64)
			return err
		})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Ping checks that the service answers with the configured credentials.
func (c *Client) Ping(ctx context.Context) error {
	return c.call(ctx, opPing, "", http.MethodGet, c.serviceURL("servicestats"), nil,
		func(r io.Reader) error {
			_, err := io.Copy(io.Discard, r)
			return err
		})
}

func (c *Client) indexURL(index, path string) string {
	return c.serviceURL("indexes/" + url.PathEscape(index) + "/" + path)
}

func (c *Client) serviceURL(path string) string {
	return c.endpoint + "/" + path + "?api-version=" + url.QueryEscape(c.apiVersion)
}

// call performs one round trip and hands a 2xx body to decode.
func (c *Client) call(
	ctx context.Context, op, index, method, target string, body []byte, decode func(io.Reader) error,
) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	requestID := clientRequestID(ctx)
	httpReq.Header.Set("api-key", c.apiKey)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("client-request-id", requestID)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	log := logger.FromContextOr(ctx, c.logger).With(
		zap.String("op", op),
		zap.String("index", index),
		zap.String("client_request_id", requestID),
	)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	metrics.GatewayRequestDuration.WithLabelValues(op, index).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(op, index, "error").Inc()
		log.Warn("Search service call failed", zap.Error(err))
		return fmt.Errorf("%w: %s: %w", domain.ErrGatewayFailure, op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := &StatusError{StatusCode: resp.StatusCode, Message: parseErrorBody(raw)}
		status := "error"
		if IsThrottleStatus(resp.StatusCode) {
			status = "throttled"
		}
		metrics.GatewayRequestsTotal.WithLabelValues(op, index, status).Inc()
		log.Warn("Search service returned an error",
			zap.Int("status", resp.StatusCode), zap.String("message", statusErr.Message))
		return fmt.Errorf("%s: %w", op, statusErr)
	}

	if err := decode(resp.Body); err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(op, index, "error").Inc()
		return fmt.Errorf("%w: decode %s response: %w", domain.ErrGatewayFailure, op, err)
	}

	metrics.GatewayRequestsTotal.WithLabelValues(op, index, "ok").Inc()
	log.Debug("Search service call", zap.Int("status", resp.StatusCode), zap.Duration("latency", time.Since(start)))
	return nil
}

// clientRequestID reuses the inbound request id when present.
func clientRequestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
