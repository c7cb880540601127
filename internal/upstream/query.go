// Package upstream talks to the ResQ platform GraphQL API: a one-shot
// locations query at view activation and a persistent location-share
// subscription for live deltas.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Althaf00710/resq-livemap/internal/model"
)

// Client issues the locations query over HTTP and the location-share
// subscription over a graphql-transport-ws websocket.
type Client struct {
	httpURL    string
	wsURL      string
	httpClient *http.Client
}

func NewClient(httpURL, wsURL string) *Client {
	return &Client{
		httpURL:    httpURL,
		wsURL:      wsURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchLocations runs the snapshot query once and returns all currently
// known vehicle positions. An empty fleet is a valid result. Rows that
// fail validation are dropped individually rather than failing the
// snapshot.
func (c *Client) FetchLocations(ctx context.Context) ([]model.LocationUpdate, error) {
	body, err := json.Marshal(graphqlRequest{Query: locationsQuery})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.httpURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("locations query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("locations query: unexpected status %d", resp.StatusCode)
	}

	var out locationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("locations query: decode response: %w", err)
	}
	if len(out.Errors) > 0 {
		return nil, fmt.Errorf("locations query: %s", out.Errors[0].Message)
	}

	updates := make([]model.LocationUpdate, 0, len(out.Data.RescueVehicleLocations))
	for _, node := range out.Data.RescueVehicleLocations {
		u, err := node.toUpdate()
		if err != nil {
			log.Warnf("Dropping snapshot row: %v", err)
			continue
		}
		updates = append(updates, u)
	}
	return updates, nil
}
