package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Path is the route served by the insight proxy
const Path = "/api/insight"

// InsightRequest is the proxy request body
type InsightRequest struct {
	Scale       int    `json:"scale"`
	Description string `json:"description"`
}

// InsightResponse is the proxy success body
type InsightResponse struct {
	Insight string `json:"insight"`
}

// ErrorResponse is the proxy failure body
type ErrorResponse struct {
	Error string `json:"error"`
}

// RemoteClient asks a running insight proxy instead of the provider.
type RemoteClient struct {
	endpoint string
	client   *http.Client
}

// NewRemoteClient targets endpoint, e.g. http://localhost:3000. A nil client uses http.DefaultClient.
func NewRemoteClient(endpoint string, client *http.Client) *RemoteClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &RemoteClient{endpoint: strings.TrimRight(endpoint, "/"), client: client}
}

// Endpoint returns the proxy root.
func (c *RemoteClient) Endpoint() string {
	return c.endpoint
}

func (c *RemoteClient) Insight(ctx context.Context, scale int, description string) (string, error) {
	body, err := json.Marshal(InsightRequest{Scale: scale, Description: description})
	if err != nil {
		return "", &RequestError{Status: http.StatusBadRequest, Message: "encode insight request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+Path, bytes.NewReader(body))
	if err != nil {
		return "", &RequestError{Status: http.StatusInternalServerError, Message: "create insight request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &RequestError{Status: http.StatusBadGateway, Message: "insight proxy unreachable", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &RequestError{Status: http.StatusBadGateway, Message: "read insight response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		var e ErrorResponse
		msg := fmt.Sprintf("insight proxy returned %d", resp.StatusCode)
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return "", &RequestError{Status: resp.StatusCode, Message: msg}
	}

	var out InsightResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", &RequestError{Status: http.StatusBadGateway, Message: "decode insight response", Err: err}
	}
	text := strings.TrimSpace(out.Insight)
	if text == "" {
		return "", &RequestError{Status: http.StatusBadGateway, Message: "insight proxy returned an empty insight"}
	}
	return text, nil
}
