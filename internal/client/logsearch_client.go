package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"logtable-backend/config"
	"logtable-backend/internal/bridge"
	"logtable-backend/internal/model"
	"logtable-backend/internal/repository"
)

var ErrUpstreamStatus = errors.New("log search endpoint returned an error status")

// maxBodyBytes bounds how much of an upstream reply is read.
const maxBodyBytes = 32 << 20

type LogSearchClient struct {
	endpoint   *url.URL
	httpClient *http.Client
}

// NewLogSearchClient builds the upstream client. It is also the PageSource
// the bridge fetches through.
func NewLogSearchClient(cfg *config.Config) (*LogSearchClient, error) {
	endpoint, err := url.Parse(cfg.LogSearch.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid log search url %q: %w", cfg.LogSearch.URL, err)
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" {
		return nil, fmt.Errorf("log search url %q must be http or https", cfg.LogSearch.URL)
	}

	transport := &http.Transport{
		MaxIdleConnsPerHost:   10,
		ResponseHeaderTimeout: time.Second * 10,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		TLSHandshakeTimeout:   5 * time.Second,
	}

	log.Info().Str("endpoint", endpoint.String()).Dur("timeout", cfg.LogSearch.Timeout).Msg("Log search client initialized")
	return &LogSearchClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.LogSearch.Timeout,
		},
	}, nil
}

func NewPageSource(c *LogSearchClient) repository.PageSource {
	return c
}

func (c *LogSearchClient) Endpoint() string {
	return c.endpoint.String()
}

func (c *LogSearchClient) Fetch(ctx context.Context, rawQuery string) (*model.PageResponse, error) {
	target := *c.endpoint
	if target.RawQuery != "" && rawQuery != "" {
		target.RawQuery = target.RawQuery + "&" + rawQuery
	} else if rawQuery != "" {
		target.RawQuery = rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build log search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("log search request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
		return nil, fmt.Errorf("%w: %s", ErrUpstreamStatus, res.Status)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read log search response: %w", err)
	}
	return bridge.MapResponse(body)
}

// Ping fetches the smallest possible page to check the endpoint is serving.
func (c *LogSearchClient) Ping(ctx context.Context) error {
	q := bridge.BuildQuery(model.PageRequest{PageIndex: 0, PageSize: 1}, nil, bridge.DefaultSortField)
	_, err := c.Fetch(ctx, q.Encode())
	return err
}
