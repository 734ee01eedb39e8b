package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/codetrackhq/codetrack/client/contracts"
	"github.com/codetrackhq/codetrack/client/models"
)

const (
	defaultServerURL = "http://localhost:5000"
	requestTimeout   = 10 * time.Second
)

// APIClient talks to the snapshot server over HTTP. The API key is sent as an
// opaque X-API-Key header on every request.
type APIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewAPIClient initializes a client for the given server. An empty baseURL
// falls back to the default local server. The key may be empty for the auth
// endpoints themselves.
func NewAPIClient(baseURL, apiKey string) contracts.ISnapshotClient {
	if baseURL == "" {
		baseURL = defaultServerURL
	}
	return &APIClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		// Hook invocations sit in the interactive loop of the surrounding
		// workflow, so requests are kept on a short leash.
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

func (c *APIClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var auth models.AuthResponse
	if err := c.post(ctx, "/api/auth/register", req, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

func (c *APIClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var auth models.AuthResponse
	if err := c.post(ctx, "/api/auth/login", req, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

func (c *APIClient) CreateProject(ctx context.Context, req models.CreateProjectRequest) (int64, error) {
	var resp struct {
		ProjectID int64 `json:"project_id"`
	}
	if err := c.post(ctx, "/api/projects", req, &resp); err != nil {
		return 0, err
	}
	return resp.ProjectID, nil
}

func (c *APIClient) SubmitChanges(ctx context.Context, req models.SnapshotRequest) (int64, error) {
	var resp struct {
		SnapshotID int64 `json:"snapshot_id"`
	}
	if err := c.post(ctx, "/api/snapshots", req, &resp); err != nil {
		return 0, err
	}
	return resp.SnapshotID, nil
}

func (c *APIClient) SubmitInteraction(ctx context.Context, req models.InteractionRequest) (int64, error) {
	var resp struct {
		InteractionID int64 `json:"interaction_id"`
	}
	if err := c.post(ctx, "/api/interactions", req, &resp); err != nil {
		return 0, err
	}
	return resp.InteractionID, nil
}

func (c *APIClient) UserStats(ctx context.Context) (*models.UserStats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/stats/user", nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	c.setHeaders(req)

	var stats models.UserStats
	if err := c.do(req, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *APIClient) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("error marshalling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	c.setHeaders(req)

	return c.do(req, out)
}

func (c *APIClient) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
}

func (c *APIClient) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		var apiError models.APIError
		if err := json.Unmarshal(body, &apiError); err == nil && apiError.Error != "" {
			return fmt.Errorf("API request failed with status code '%d' - %s", resp.StatusCode, apiError.Error)
		}
		return fmt.Errorf("API request failed with status code '%d'", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}
