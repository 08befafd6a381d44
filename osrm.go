package specfill

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// RouteService is the routing collaborator: expands an ordered (lon, lat)
// waypoint chain into full route geometry in (lat, lon) order.
type RouteService interface {
	Route(ctx context.Context, mode Mode, coords []Coord) ([]Coord, error)
}

// DefaultOSRMURL Public OSRM demo endpoint
const DefaultOSRMURL = "https://router.project-osrm.org"

// OSRMClient implements RouteService against the OSRM HTTP API. Requests are
// fixed to full-detail polyline geometry without turn-by-turn steps.
type OSRMClient struct {
	baseURL string
	client  *http.Client
}

func NewOSRMClient(options ...func(*OSRMClient)) *OSRMClient {
	client := &OSRMClient{
		baseURL: DefaultOSRMURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, option := range options {
		option(client)
	}
	return client
}

func WithOSRMBaseURL(baseURL string) func(*OSRMClient) {
	return func(client *OSRMClient) {
		client.baseURL = baseURL
	}
}

func WithOSRMHTTPClient(httpClient *http.Client) func(*OSRMClient) {
	return func(client *OSRMClient) {
		client.client = httpClient
	}
}

// osrmProfile maps a travel mode to an OSRM routing profile. Bus legs reuse
// the car profile since they follow the road network.
func osrmProfile(mode Mode) (string, bool) {
	switch mode {
	case MODE_CAR, MODE_BUS:
		return "car", true
	case MODE_WALKING:
		return "foot", true
	case MODE_BICYCLING:
		return "bike", true
	}
	return "", false
}

// Route requests route geometry through the given (lon, lat) waypoint chain
// and returns it decoded in (lat, lon) order.
func (c *OSRMClient) Route(ctx context.Context, mode Mode, coords []Coord) ([]Coord, error) {
	profile, ok := osrmProfile(mode)
	if !ok {
		return nil, &UnsupportedModeError{Mode: mode}
	}
	points := make([]string, len(coords))
	for i := range coords {
		points[i] = fmt.Sprintf("%f,%f", coords[i][0], coords[i][1])
	}
	reqURL := fmt.Sprintf("%s/route/v1/%s/%s?overview=full&geometries=polyline&steps=false",
		c.baseURL, profile, strings.Join(points, ";"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &RoutingServiceError{Err: errors.Wrap(err, "Build OSRM request")}
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &RoutingServiceError{Err: errors.Wrap(err, "OSRM call")}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &RoutingServiceError{Err: fmt.Errorf("OSRM status %d", resp.StatusCode)}
	}
	var obj struct {
		Code   string `json:"code"`
		Routes []struct {
			Geometry string `json:"geometry"`
		} `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&obj); err != nil {
		return nil, &RoutingServiceError{Err: errors.Wrap(err, "Decode OSRM response")}
	}
	if obj.Code != "Ok" || len(obj.Routes) == 0 {
		return nil, &RoutingServiceError{Err: fmt.Errorf("OSRM returned code '%s' with %d routes", obj.Code, len(obj.Routes))}
	}
	path, err := DecodePolyline(obj.Routes[0].Geometry)
	if err != nil {
		return nil, &RoutingServiceError{Err: errors.Wrap(err, "Decode OSRM geometry")}
	}
	return path, nil
}
