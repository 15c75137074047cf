// Package routing provides the traffic-aware ETA adapter backed by a
// distance-matrix style HTTP API.
package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/kernel"
	"github.com/dehanf/Smart-takeout-system/internal/core/ports"
)

// DefaultTimeout bounds a single provider call. The decision engine treats
// a slow provider the same as a failing one, so the bound is tight.
const DefaultTimeout = 1 * time.Second

const statusOK = "OK"

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// matrixResponse mirrors the distance-matrix wire format. Only the first
// row and element are ever consulted: one origin, one destination.
type matrixResponse struct {
	Status string      `json:"status"`
	Rows   []matrixRow `json:"rows"`
}

type matrixRow struct {
	Elements []matrixElement `json:"elements"`
}

type matrixElement struct {
	Status            string          `json:"status"`
	Duration          *matrixDuration `json:"duration"`
	DurationInTraffic *matrixDuration `json:"duration_in_traffic"`
}

type matrixDuration struct {
	Value int64 `json:"value"` // seconds
}

// DistanceMatrixProvider implements ports.ETAProvider against a
// distance-matrix style endpoint. Requests ask for live traffic conditions
// (departure_time=now) and prefer the traffic-adjusted duration when the
// provider returns one.
//
// The provider is safe for concurrent use.
type DistanceMatrixProvider struct {
	session *http.Client
	baseURL string
	apiKey  string
}

// NewDistanceMatrixProvider creates a provider for the given endpoint.
// A non-positive timeout falls back to DefaultTimeout.
func NewDistanceMatrixProvider(baseURL, apiKey string, timeout time.Duration) (*DistanceMatrixProvider, error) {
	if baseURL == "" {
		return nil, errors.New("distance matrix base URL is empty")
	}
	if apiKey == "" {
		return nil, errors.New("distance matrix api key is empty")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &DistanceMatrixProvider{
		session: &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}, nil
}

// LiveETA queries the current driving duration from origin to destination.
// Returns ports.ErrNoRoute when the provider cannot connect the two points.
func (p *DistanceMatrixProvider) LiveETA(
	ctx context.Context,
	origin, destination kernel.GeoPoint,
) (time.Duration, error) {
	req, err := p.newRequest(ctx, origin, destination)
	if err != nil {
		return 0, err
	}

	resp, err := p.do(req)
	if err != nil {
		return 0, fmt.Errorf("distance matrix call: %w", err)
	}
	defer resp.Body.Close()

	var matrix matrixResponse
	if err = json.NewDecoder(resp.Body).Decode(&matrix); err != nil {
		return 0, fmt.Errorf("decode distance matrix response: %w", err)
	}

	return etaFromMatrix(matrix)
}

func (p *DistanceMatrixProvider) newRequest(
	ctx context.Context,
	origin, destination kernel.GeoPoint,
) (*http.Request, error) {
	query := url.Values{}
	query.Set("origins", formatPoint(origin))
	query.Set("destinations", formatPoint(destination))
	query.Set("mode", "driving")
	query.Set("departure_time", "now")
	query.Set("key", p.apiKey)

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, p.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (p *DistanceMatrixProvider) do(req *http.Request) (*http.Response, error) {
	resp, err := p.session.Do(req)
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

// etaFromMatrix extracts the single origin/destination duration.
// duration_in_traffic reflects live conditions and wins over the free-flow
// duration when present.
func etaFromMatrix(matrix matrixResponse) (time.Duration, error) {
	if matrix.Status != statusOK {
		return 0, fmt.Errorf("distance matrix status %q", matrix.Status)
	}
	if len(matrix.Rows) == 0 || len(matrix.Rows[0].Elements) == 0 {
		return 0, errors.New("distance matrix response has no elements")
	}

	element := matrix.Rows[0].Elements[0]
	if element.Status != statusOK {
		return 0, fmt.Errorf("%w: element status %q", ports.ErrNoRoute, element.Status)
	}

	duration := element.Duration
	if element.DurationInTraffic != nil {
		duration = element.DurationInTraffic
	}
	if duration == nil {
		return 0, errors.New("distance matrix element has no duration")
	}

	return time.Duration(duration.Value) * time.Second, nil
}

func formatPoint(p kernel.GeoPoint) string {
	return fmt.Sprintf("%f,%f", p.Latitude(), p.Longitude())
}
