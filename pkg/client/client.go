package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
)

// Client is the Bizdesk API client
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string // JWT access token for authenticated requests
}

// Config holds the client configuration
type Config struct {
	BaseURL    string        // Server URL (e.g., "http://localhost:8080")
	Timeout    time.Duration // HTTP client timeout (default: 30s)
	HTTPClient *http.Client  // Optional custom HTTP client
}

// apiPrefix is prepended to every resource path
const apiPrefix = "/api/v1"

// NewClient creates a new Bizdesk API client
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
		}
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}
}

// SetToken sets the JWT token for authenticated requests
func (c *Client) SetToken(token string) {
	c.token = token
}

// GetToken returns the current JWT token
func (c *Client) GetToken() string {
	return c.token
}

// envelope is the wrapper every JSON response comes in
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *APIError       `json:"error"`
}

// newRequest builds a request with auth and content headers set
func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// send performs the request and returns the raw body of a successful response
func (c *Client) send(req *http.Request) (*http.Response, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, nil, parseError(resp.StatusCode, respBody)
	}
	return resp, respBody, nil
}

// doRequest performs a JSON request and decodes the envelope's data into result
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	_, respBody, err := c.send(req)
	if err != nil {
		return err
	}

	if result == nil || len(respBody) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, result); err != nil {
		return fmt.Errorf("failed to parse response data: %w", err)
	}
	return nil
}

// download performs a request whose successful response is a file attachment
func (c *Client) download(ctx context.Context, method, path string, body interface{}) (*File, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "*/*")

	resp, data, err := c.send(req)
	if err != nil {
		return nil, err
	}

	f := &File{
		ContentType: resp.Header.Get("Content-Type"),
		ArchiveKey:  resp.Header.Get("X-Archive-Key"),
		Data:        data,
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		f.Filename = params["filename"]
	}
	return f, nil
}

// Invoices returns the invoice service
func (c *Client) Invoices() *InvoiceService {
	return &InvoiceService{client: c}
}

// Tier returns the plan and usage service
func (c *Client) Tier() *TierService {
	return &TierService{client: c}
}

// Leads returns the lead service
func (c *Client) Leads() *LeadService {
	return &LeadService{client: c}
}

// Tasks returns the task service
func (c *Client) Tasks() *TaskService {
	return &TaskService{client: c}
}
