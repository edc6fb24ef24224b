package conditions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"green-route-service/internal/domain"
	"green-route-service/internal/platform/obs"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// HTTPSource fetches traffic/weather condition snapshots from an
// aggregation endpoint, with retry/backoff on transient failures. The
// optimization core never talks to it directly: the serving layer
// resolves a snapshot here and injects the value.
//
// The source is safe for concurrent use.
type HTTPSource struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewHTTPSource(baseURL, apiKey string) (*HTTPSource, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("conditions base URL is empty")
	}
	return &HTTPSource{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

type snapshotResponse struct {
	ObservedAt        time.Time          `json:"observed_at"`
	TrafficMultiplier float64            `json:"traffic_multiplier"`
	WeatherMultiplier float64            `json:"weather_multiplier"`
	EdgeMultipliers   map[string]float64 `json:"edge_multipliers"`
}

// Snapshot resolves current conditions for a region key.
func (s *HTTPSource) Snapshot(ctx context.Context, region string) (_ domain.ConditionSnapshot, err error) {
	defer obs.Time(ctx, "conditions.http.Snapshot")(&err)

	region = strings.TrimSpace(region)
	if region == "" {
		return domain.ConditionSnapshot{}, errors.New("get conditions: region must be non-empty")
	}

	endpoint := fmt.Sprintf("%s/v1/conditions?region=%s", s.baseURL, url.QueryEscape(region))

	resp, err := s.doWithRetry(ctx, func() (*http.Request, error) {
		return s.newRequest(ctx, http.MethodGet, endpoint)
	})
	if err != nil {
		return domain.ConditionSnapshot{}, fmt.Errorf("get conditions for %q: %w", region, err)
	}
	defer resp.Body.Close()

	var sr snapshotResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return domain.ConditionSnapshot{}, fmt.Errorf("decode conditions response: %w", err)
	}

	snap := domain.ConditionSnapshot{
		ObservedAt:        sr.ObservedAt,
		TrafficMultiplier: sr.TrafficMultiplier,
		WeatherMultiplier: sr.WeatherMultiplier,
		EdgeMultipliers:   sr.EdgeMultipliers,
	}
	if err := snap.Validate(); err != nil {
		return domain.ConditionSnapshot{}, fmt.Errorf("conditions for %q: %w", region, err)
	}
	return snap, nil
}

func (s *HTTPSource) newRequest(ctx context.Context, method, endpoint string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if s.apiKey != "" {
		req.Header.Set("Authorization", s.apiKey)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (s *HTTPSource) do(req *http.Request) (*http.Response, error) {
	resp, err := s.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 5xx responses)
// using exponential backoff while respecting context cancellation.
func (s *HTTPSource) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := s.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
