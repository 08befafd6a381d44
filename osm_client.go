package specfill

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// OSMSource is the OSM data-fetch collaborator: node coordinate lookups plus
// relation and full-way detail for the path stitcher.
type OSMSource interface {
	// NodeCoord resolves a node id to its (lon, lat) pair.
	NodeCoord(ctx context.Context, nodeID osm.NodeID) (Coord, error)
	// Relation returns the relation with its member list.
	Relation(ctx context.Context, relationID osm.RelationID) (*osm.Relation, error)
	// WayFull returns the way entry plus all nodes it references.
	WayFull(ctx context.Context, wayID osm.WayID) (*osm.OSM, error)
}

// DefaultOSMAPIURL Public OSM API v0.6 endpoint
const DefaultOSMAPIURL = "https://api.openstreetmap.org/api/0.6"

// OSMAPIClient implements OSMSource against the OSM API v0.6 XML surface
type OSMAPIClient struct {
	baseURL string
	client  *http.Client
}

func NewOSMAPIClient(options ...func(*OSMAPIClient)) *OSMAPIClient {
	client := &OSMAPIClient{
		baseURL: DefaultOSMAPIURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, option := range options {
		option(client)
	}
	return client
}

func WithOSMBaseURL(baseURL string) func(*OSMAPIClient) {
	return func(client *OSMAPIClient) {
		client.baseURL = baseURL
	}
}

func WithOSMHTTPClient(httpClient *http.Client) func(*OSMAPIClient) {
	return func(client *OSMAPIClient) {
		client.client = httpClient
	}
}

func (c *OSMAPIClient) get(ctx context.Context, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, 0, errors.Wrap(err, "Build OSM API request")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "OSM API call '%s'", path)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, errors.Wrapf(err, "Read OSM API response for '%s'", path)
	}
	return body, resp.StatusCode, nil
}

// NodeCoord resolves a node id to its (lon, lat) pair. Unknown ids (deleted
// nodes included) fail with *NotFoundError.
func (c *OSMAPIClient) NodeCoord(ctx context.Context, nodeID osm.NodeID) (Coord, error) {
	body, status, err := c.get(ctx, fmt.Sprintf("/node/%d", nodeID))
	if err != nil {
		return Coord{}, err
	}
	if status == http.StatusNotFound || status == http.StatusGone {
		return Coord{}, &NotFoundError{NodeID: nodeID}
	}
	if status != http.StatusOK {
		return Coord{}, fmt.Errorf("OSM API status %d for node %d", status, nodeID)
	}
	var doc osm.OSM
	if err := xml.Unmarshal(body, &doc); err != nil {
		return Coord{}, errors.Wrapf(err, "Decode node %d", nodeID)
	}
	if len(doc.Nodes) == 0 {
		return Coord{}, &NotFoundError{NodeID: nodeID}
	}
	node := doc.Nodes[0]
	return Coord{node.Lon, node.Lat}, nil
}

func (c *OSMAPIClient) Relation(ctx context.Context, relationID osm.RelationID) (*osm.Relation, error) {
	body, status, err := c.get(ctx, fmt.Sprintf("/relation/%d", relationID))
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("OSM API status %d for relation %d", status, relationID)
	}
	var doc osm.OSM
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, errors.Wrapf(err, "Decode relation %d", relationID)
	}
	if len(doc.Relations) == 0 {
		return nil, fmt.Errorf("OSM API returned no relation entry for %d", relationID)
	}
	return doc.Relations[0], nil
}

func (c *OSMAPIClient) WayFull(ctx context.Context, wayID osm.WayID) (*osm.OSM, error) {
	body, status, err := c.get(ctx, fmt.Sprintf("/way/%d/full", wayID))
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("OSM API status %d for way %d", status, wayID)
	}
	var doc osm.OSM
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, errors.Wrapf(err, "Decode way %d", wayID)
	}
	return &doc, nil
}
