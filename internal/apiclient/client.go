// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package apiclient talks to the recruiting platform's admin REST API. It
// fetches status-partitioned job listings as raw JSON, leaving their shape
// to the merge package, and issues moderation mutations.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/hireboard/internal/httputil"
	"github.com/pdiddy/hireboard/pkg/types"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 16 << 20

// Client is an admin API client. It is safe for concurrent use.
type Client struct {
	http       *http.Client
	baseURL    string
	token      string
	userAgent  string
	maxRetries int
}

// New returns a client for cfg. When httpClient is nil one is created with
// cfg.Timeout.
func New(cfg types.APIConfig, httpClient *http.Client) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api base URL is not configured")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid api base URL %q: %w", cfg.BaseURL, err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		http:       httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
	}, nil
}

// FetchPartition returns the raw listing of jobs with the given status.
func (c *Client) FetchPartition(ctx context.Context, status string) (json.RawMessage, error) {
	reqURL := c.baseURL + "/admin/jobs?" + url.Values{"status": {status}}.Encode()

	req, err := c.newRequest(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("fetching %s jobs: %w", status, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s jobs: %w", status, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("admin API returned HTTP %d for %s jobs", resp.StatusCode, status)
	}
	return json.RawMessage(data), nil
}

// Mutate performs action on job id. Approve and reject are POSTs to
// /admin/jobs/{id}/{action}, update is a PATCH and delete a DELETE of
// /admin/jobs/{id}. payload, when non-nil, is sent as the JSON body.
//
// A 2xx response without a "success" field counts as success. A non-2xx
// response carrying an error message is returned as an unsuccessful
// result; one without a message is returned as an error.
func (c *Client) Mutate(ctx context.Context, id int64, action types.Action, payload any) (types.MutationResult, error) {
	jobURL := c.baseURL + "/admin/jobs/" + strconv.FormatInt(id, 10)

	var method, reqURL string
	switch action {
	case types.ActionApprove, types.ActionReject:
		method, reqURL = http.MethodPost, jobURL+"/"+string(action)
	case types.ActionUpdate:
		method, reqURL = http.MethodPatch, jobURL
	case types.ActionDelete:
		method, reqURL = http.MethodDelete, jobURL
	default:
		return types.MutationResult{}, fmt.Errorf("unsupported action %q", action)
	}

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return types.MutationResult{}, fmt.Errorf("encoding %s payload: %w", action, err)
		}
	}

	req, err := c.newRequest(ctx, method, reqURL, body)
	if err != nil {
		return types.MutationResult{}, err
	}

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.maxRetries)
	if err != nil {
		return types.MutationResult{}, fmt.Errorf("%s job %d: %w", action, id, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return types.MutationResult{}, fmt.Errorf("reading %s response: %w", action, err)
	}

	var mr mutationResponse
	if len(bytes.TrimSpace(data)) > 0 {
		// Bodies that are not JSON objects carry no verdict; the status code decides.
		_ = json.Unmarshal(data, &mr)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if msg := mr.message(); msg != "" {
			return types.MutationResult{Success: false, Error: msg}, nil
		}
		return types.MutationResult{}, fmt.Errorf("%s job %d: admin API returned HTTP %d", action, id, resp.StatusCode)
	}

	if mr.Success != nil && !*mr.Success {
		return types.MutationResult{Success: false, Error: mr.message()}, nil
	}
	return types.MutationResult{Success: true}, nil
}

func (c *Client) newRequest(ctx context.Context, method, reqURL string, body []byte) (*http.Request, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, rd)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// mutationResponse is the admin API's mutation envelope. Older endpoints
// report failures under "message" instead of "error".
type mutationResponse struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (r mutationResponse) message() string {
	if r.Error != "" {
		return r.Error
	}
	return r.Message
}
