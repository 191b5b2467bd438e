package collab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Shared HTTP client for collaborator calls.
var collabHTTPClient = &http.Client{Timeout: 15 * time.Second}

// apiClient is the JSON transport every HTTP adapter shares. Responses are
// decoded leniently: unknown fields in collaborator payloads are ignored.
type apiClient struct {
	baseURL string
	logger  *zap.Logger
	client  *http.Client
}

func newAPIClient(baseURL string, logger *zap.Logger) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		client:  collabHTTPClient,
	}
}

type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

func (b errorBody) text() string {
	if b.Message != "" {
		return b.Message
	}
	if len(b.Detail) > 0 {
		var s string
		if err := json.Unmarshal(b.Detail, &s); err == nil {
			return s
		}
		return string(b.Detail)
	}
	return ""
}

// doJSON issues one JSON request and decodes the response into out (which
// may be nil). Failures come back as *Error with a kind mapped from the
// status code.
func (c *apiClient) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: Unknown, Op: op, Message: "encode request", Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Kind: Unknown, Op: op, Message: "build request", Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("collaborator unreachable", zap.String("op", op), zap.Error(err))
		return &Error{Kind: Transient, Op: op, Message: "collaborator unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		kind := kindForStatus(resp.StatusCode)
		c.logger.Warn("collaborator error",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.String("kind", string(kind)))
		return &Error{Kind: kind, Op: op, Message: eb.text()}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: Unknown, Op: op, Message: fmt.Sprintf("decode response: %v", err), Err: err}
	}
	return nil
}

func kindForStatus(status int) FailureKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return Unauthorized
	case status == http.StatusNotFound:
		return NotFound
	case status == http.StatusRequestTimeout || status == http.StatusTooManyRequests || status >= 500:
		return Transient
	case status >= 400 && status < 500:
		return ValidationFailed
	default:
		return Unknown
	}
}
