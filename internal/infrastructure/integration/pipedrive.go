package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kioskcrm/backend/internal/infrastructure/config"
)

const defaultPipedriveBaseURL = "https://api.pipedrive.com/v1"

// PipedriveOrganization is the subset of organization fields the backend writes
type PipedriveOrganization struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// PipedriveContact is one email or phone entry
type PipedriveContact struct {
	Value   string `json:"value"`
	Primary bool   `json:"primary"`
	Label   string `json:"label,omitempty"`
}

// PipedrivePerson is the subset of person fields the backend writes
type PipedrivePerson struct {
	Name  string             `json:"name"`
	Email []PipedriveContact `json:"email,omitempty"`
	Phone []PipedriveContact `json:"phone,omitempty"`
	OrgID *int64             `json:"org_id,omitempty"`
}

// PipedriveDeal is the subset of deal fields the backend writes
type PipedriveDeal struct {
	Title    string `json:"title"`
	PersonID *int64 `json:"person_id,omitempty"`
	OrgID    *int64 `json:"org_id,omitempty"`
}

type pipedriveResponse struct {
	Success bool `json:"success"`
	Data    struct {
		ID int64 `json:"id"`
	} `json:"data"`
	Error string `json:"error"`
}

// PipedriveClient calls the Pipedrive v1 REST API with an API token
type PipedriveClient struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// NewPipedriveClient creates a Pipedrive client
func NewPipedriveClient(cfg config.PipedriveConfig) (*PipedriveClient, error) {
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("%w: pipedrive api token is empty", ErrNotConfigured)
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultPipedriveBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &PipedriveClient{
		baseURL:    baseURL,
		apiToken:   cfg.APIToken,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// UpsertOrganization creates the organization, or updates it when id is set.
// It returns the remote id.
func (c *PipedriveClient) UpsertOrganization(ctx context.Context, id *int64, org PipedriveOrganization) (int64, error) {
	if id != nil {
		return c.do(ctx, http.MethodPut, fmt.Sprintf("/organizations/%d", *id), org)
	}
	return c.do(ctx, http.MethodPost, "/organizations", org)
}

// UpsertPerson creates the person, or updates it when id is set
func (c *PipedriveClient) UpsertPerson(ctx context.Context, id *int64, person PipedrivePerson) (int64, error) {
	if id != nil {
		return c.do(ctx, http.MethodPut, fmt.Sprintf("/persons/%d", *id), person)
	}
	return c.do(ctx, http.MethodPost, "/persons", person)
}

// UpsertDeal creates the deal, or updates it when id is set
func (c *PipedriveClient) UpsertDeal(ctx context.Context, id *int64, deal PipedriveDeal) (int64, error) {
	if id != nil {
		return c.do(ctx, http.MethodPut, fmt.Sprintf("/deals/%d", *id), deal)
	}
	return c.do(ctx, http.MethodPost, "/deals", deal)
}

func (c *PipedriveClient) do(ctx context.Context, method, path string, payload any) (int64, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("pipedrive: failed to encode request: %w", err)
	}

	endpoint := c.baseURL + path + "?" + url.Values{"api_token": {c.apiToken}}.Encode()
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("pipedrive: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// the URL carries the token; report only the path
		return 0, fmt.Errorf("%w: pipedrive %s %s", ErrUnavailable, method, path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return 0, fmt.Errorf("pipedrive: failed to read response: %w", err)
	}

	var parsed pipedriveResponse
	_ = json.Unmarshal(respBody, &parsed)
	if resp.StatusCode >= 300 || !parsed.Success {
		msg := parsed.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return 0, fmt.Errorf("%w: pipedrive %s %s: HTTP %d: %s", ErrRequestFailed, method, path, resp.StatusCode, msg)
	}
	if parsed.Data.ID == 0 {
		return 0, fmt.Errorf("%w: pipedrive %s %s: response without id", ErrRequestFailed, method, path)
	}
	return parsed.Data.ID, nil
}
