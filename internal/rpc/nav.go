package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	config "github.com/provscan/explorer-ingest/configs"
	"github.com/provscan/explorer-ingest/internal/common"
	"github.com/provscan/explorer-ingest/internal/status"
)

type INavClient interface {
	GetLatestNavPrices(ctx context.Context, denom string, includeMarkers, includeScopes bool, fromTimestamp time.Time, limit int) ([]common.NavEvent, error)
}

// NavClient talks to the external valuation service. Same contract as the
// node client: one call, one classified outcome, no retries.
type NavClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewNavClient() (*NavClient, error) {
	baseURL := config.Cfg.Nav.URL
	if baseURL == "" {
		return nil, &status.ConfigError{Reason: "nav service URL is not set"}
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, &status.ConfigError{Reason: fmt.Sprintf("nav service URL %q is not parseable: %v", baseURL, err)}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, &status.ConfigError{Reason: fmt.Sprintf("unsupported scheme %q in nav service URL %q", parsed.Scheme, baseURL)}
	}

	timeout := defaultCallTimeout
	if config.Cfg.Nav.TimeoutSeconds > 0 {
		timeout = time.Duration(config.Cfg.Nav.TimeoutSeconds) * time.Second
	}
	return &NavClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  config.Cfg.Nav.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// GetLatestNavPrices returns at most limit NAV events for denom, newest
// first, bounded below by fromTimestamp. includeMarkers and includeScopes
// restrict the valuation source. Every returned event matches the requested
// denom; a response violating that is a service-side bug and classifies as an
// internal failure.
func (c *NavClient) GetLatestNavPrices(ctx context.Context, denom string, includeMarkers, includeScopes bool, fromTimestamp time.Time, limit int) ([]common.NavEvent, error) {
	if denom == "" {
		return nil, status.InvalidArgument("denom must not be empty")
	}
	if limit <= 0 {
		return nil, status.InvalidArgument("limit must be positive, got %d", limit)
	}

	params := url.Values{}
	params.Set("denom", denom)
	params.Set("markers", strconv.FormatBool(includeMarkers))
	params.Set("scopes", strconv.FormatBool(includeScopes))
	if !fromTimestamp.IsZero() {
		params.Set("from", strconv.FormatInt(fromTimestamp.UnixMilli(), 10))
	}
	params.Set("limit", strconv.Itoa(limit))
	requestURL := fmt.Sprintf("%s/api/v1/nav/latest?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, status.InvalidArgument("failed to build nav request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &status.ProtocolError{
			Kind:   status.KindUnknown,
			Method: http.MethodGet,
			URL:    requestURL,
			Err:    err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &status.ProtocolError{
			Kind:   status.KindUnknown,
			Method: http.MethodGet,
			URL:    requestURL,
			Err:    err,
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, classifyNavStatus(resp.StatusCode, requestURL, string(body))
	}

	var events []common.NavEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, status.MalformedPayload("nav response is not parseable: %v", err)
	}
	for _, event := range events {
		if event.Denom != denom {
			return nil, &status.ProtocolError{
				Kind:   status.KindIllegalState,
				Method: http.MethodGet,
				URL:    requestURL,
				Err:    fmt.Errorf("nav service returned denom %q for a %q request", event.Denom, denom),
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})
	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func classifyNavStatus(statusCode int, requestURL, body string) error {
	body = strings.TrimSpace(body)
	switch {
	case statusCode == http.StatusNotFound:
		return status.NotFound("nav request %s: %s", requestURL, body)
	case statusCode == http.StatusBadRequest:
		return status.InvalidArgument("nav request %s: %s", requestURL, body)
	case statusCode >= 500:
		return &status.ProtocolError{
			Kind:         status.KindIllegalState,
			Method:       http.MethodGet,
			URL:          requestURL,
			RemoteStatus: statusCode,
			Body:         body,
		}
	default:
		return &status.ProtocolError{
			Kind:         status.KindUnknown,
			Method:       http.MethodGet,
			URL:          requestURL,
			RemoteStatus: statusCode,
			Body:         body,
		}
	}
}
