// Package client talks to a running vaultkeeper HTTP API. Its vault, tag and
// account clients satisfy the same service interfaces as the local services,
// so the controllers and the CLI work against either.
package client

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

	"golang.org/x/exp/slog"

	"vaultkeeper/internal/domain/failure"
)

type Client struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string
}

// New creates a client for the API at baseURL (scheme and host, no path).
func New(baseURL string, log *slog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		log:       log.With("component", "http_client"),
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: "Vaultkeeper-Client/1.0",
	}
}

// StatusError is a non-2xx answer of the server.
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("ошибка сервера: статус %d", e.Status)
	}
	return fmt.Sprintf("ошибка сервера: %s (статус %d)", e.Detail, e.Status)
}

// HealthCheck проверяет доступность сервера
func (c *Client) HealthCheck(ctx context.Context) error {
	var out struct {
		Status  string `json:"status"`
		Storage string `json:"storage"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &out, "health check"); err != nil {
		return err
	}
	if out.Storage != "OK" {
		return failure.New(failure.PersistenceFailed, "health check", fmt.Errorf("хранилище сервера: %s", out.Storage))
	}
	return nil
}

// do sends body as JSON and decodes a 2xx answer into result. Failures carry
// the failure kind matching the status code.
func (c *Client) do(ctx context.Context, method, path string, body, result any, op string) error {
	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return failure.New(failure.PersistenceFailed, op, err)
	}
	return c.parseResponse(resp, result, op)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	return resp, nil
}

func (c *Client) parseResponse(resp *http.Response, result any, op string) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure.New(failure.PersistenceFailed, op, fmt.Errorf("ошибка чтения ответа: %w", err))
	}

	c.log.Debug("HTTP response",
		"method", resp.Request.Method,
		"path", resp.Request.URL.Path,
		"status", resp.StatusCode,
	)

	if resp.StatusCode >= 400 {
		// huma отвечает в формате application/problem+json
		var problem struct {
			Detail string `json:"detail"`
		}
		_ = json.Unmarshal(body, &problem)
		return failure.New(kindOf(resp.StatusCode), op, &StatusError{Status: resp.StatusCode, Detail: problem.Detail})
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return failure.New(failure.PersistenceFailed, op, fmt.Errorf("ошибка парсинга ответа: %w", err))
		}
	}
	return nil
}

func kindOf(status int) failure.Kind {
	switch status {
	case http.StatusNotFound:
		return failure.NotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusConflict:
		return failure.ValidationFailed
	default:
		return failure.PersistenceFailed
	}
}

// statusOf returns the HTTP status carried by err, or 0.
func statusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}
