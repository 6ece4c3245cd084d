// internal/client/client.go

// Package client is the Go consumer of the REST API: a thin HTTP client
// plus a Controller that keeps a local, server-acknowledged copy of the
// transaction list and derives filtered views from it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"finance-tracker/internal/domain"
)

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Token returns the bearer token from the last successful login.
func (c *Client) Token() string { return c.token }

// SetToken installs a previously issued token, e.g. one loaded from disk.
func (c *Client) SetToken(token string) { c.token = token }

type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// IsStatus reports whether err is an API error with the given HTTP status.
func IsStatus(err error, status int) bool {
	apiErr, ok := err.(*apiError)
	return ok && apiErr.Status == status
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = resp.Status
		}
		return &apiError{Status: resp.StatusCode, Message: e.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) Register(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	return c.do(ctx, http.MethodPost, "/api/register", body, nil)
}

// Login verifies credentials and stores the issued token on the client.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &resp); err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

func (c *Client) CurrentUser(ctx context.Context) (string, error) {
	var resp struct {
		User struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/user", nil, &resp); err != nil {
		return "", err
	}
	return resp.User.Username, nil
}

func (c *Client) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	var list []domain.Transaction
	if err := c.do(ctx, http.MethodGet, "/api/transactions", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) CreateTransaction(ctx context.Context, description string, amount float64, category, date string) (int64, error) {
	body := map[string]any{
		"description": description,
		"amount":      amount,
		"category":    category,
		"date":        date,
	}
	var resp struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/transactions", body, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, id int64, description string, amount float64, category string) error {
	body := map[string]any{
		"description": description,
		"amount":      amount,
		"category":    category,
	}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/transactions/%d", id), body, nil)
}

func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", id), nil, nil)
}

func (c *Client) ClearTransactions(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/transactions", nil, nil)
}

func (c *Client) CategorySummary(ctx context.Context) ([]domain.CategorySummary, error) {
	var summary []domain.CategorySummary
	if err := c.do(ctx, http.MethodGet, "/api/category-summary", nil, &summary); err != nil {
		return nil, err
	}
	return summary, nil
}

func (c *Client) CalculateInterest(ctx context.Context, principal, rate, years float64) (float64, error) {
	body := map[string]float64{"principal": principal, "rate": rate, "years": years}
	var resp struct {
		FutureValue float64 `json:"futureValue"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/calculate-interest", body, &resp); err != nil {
		return 0, err
	}
	return resp.FutureValue, nil
}

func (c *Client) CheckBudget(ctx context.Context, budget, totalSpent float64) (string, error) {
	body := map[string]float64{"budget": budget, "totalSpent": totalSpent}
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/check-budget", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
