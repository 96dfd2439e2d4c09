// Package standardize calls the hosted name-standardization service that
// maps free-text program strings to canonical university and program names.
// The model behind the service is an external collaborator; this package
// only speaks its HTTP contract.
package standardize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gradetl/internal/records"
	"gradetl/internal/services"
)

// row is the wire shape of one record in the standardize exchange. The
// service echoes the input fields back with the llm-generated pair added.
type row struct {
	Program       string `json:"program"`
	LLMProgram    string `json:"llm-generated-program,omitempty"`
	LLMUniversity string `json:"llm-generated-university,omitempty"`
}

type request struct {
	Rows []row `json:"rows"`
}

type response struct {
	Rows []row `json:"rows"`
}

// Client provides access to the standardization service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a standardization client.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("standardizer base url required")
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Standardize enriches the given applicants with canonical university and
// program names. The service processes rows positionally, so the result has
// the same length and order as the input.
func (c *Client) Standardize(ctx context.Context, apps []records.Applicant) ([]records.Applicant, error) {
	if len(apps) == 0 {
		return apps, nil
	}

	payload := request{Rows: make([]row, len(apps))}
	for i, app := range apps {
		payload.Rows[i] = row{Program: app.Program}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal standardize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/standardize", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build standardize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalService, "standardize", "call service", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, services.Wrap(services.ErrExternalService, "standardize", "call service",
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))), nil)
	}

	var decoded response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, services.Wrap(services.ErrExternalService, "standardize", "decode response", "", err)
	}
	if len(decoded.Rows) != len(apps) {
		return nil, services.Wrap(services.ErrExternalService, "standardize", "decode response",
			fmt.Sprintf("row count mismatch: sent %d, received %d", len(apps), len(decoded.Rows)), nil)
	}

	enriched := make([]records.Applicant, len(apps))
	for i, app := range apps {
		app.LLMProgram = strings.TrimSpace(decoded.Rows[i].LLMProgram)
		app.LLMUniversity = strings.TrimSpace(decoded.Rows[i].LLMUniversity)
		enriched[i] = app
	}
	return enriched, nil
}
