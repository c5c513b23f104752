/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package figma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"bennypowers.dev/codesyntax/internal/logger"
)

// DefaultBaseURL is the REST API root.
const DefaultBaseURL = "https://api.figma.com"

// TokenHeader carries the personal access token.
const TokenHeader = "X-Figma-Token"

// Client talks to the variables REST endpoints.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
	token   string
}

// retryLogger routes retry messages to the debug log.
type retryLogger struct{}

func (retryLogger) Printf(format string, args ...any) {
	logger.Debug(format, args...)
}

// NewClient creates a client. An empty baseURL means DefaultBaseURL.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = retryLogger{}
	retryClient.RetryMax = 5
	return &Client{
		http:    retryClient,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
	}
}

// Fetch returns the local variables payload of a file.
func (c *Client) Fetch(ctx context.Context, fileKey string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, c.endpoint(fileKey, "variables/local"), nil)
}

// Load fetches and parses a file's local variables.
func (c *Client) Load(ctx context.Context, fileKey string) (*Document, error) {
	data, err := c.Fetch(ctx, fileKey)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Push posts code syntax updates. Nothing is sent when updates is empty.
func (c *Client) Push(ctx context.Context, fileKey string, updates []Update) error {
	if len(updates) == 0 {
		return nil
	}
	body, err := json.Marshal(map[string][]Update{"variables": updates})
	if err != nil {
		return fmt.Errorf("failed to encode updates: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, c.endpoint(fileKey, "variables"), body)
	return err
}

func (c *Client) endpoint(fileKey, resource string) string {
	return fmt.Sprintf("%s/v1/files/%s/%s", c.baseURL, url.PathEscape(fileKey), resource)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set(TokenHeader, c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug("%s %s", method, endpoint)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		msg := resp.Status
		if gjson.ValidBytes(data) {
			msg = errorMessage(data)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	return data, nil
}

// APIError is a non-success response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}
