// Package http is the client side of the custody API. Client implements the
// auth and document gateways used by the terminal client.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
	"github.com/sharedcustody/custody-calendar/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// TokenSource yields the bearer token of the current session, if any.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL string
	hc      *nethttp.Client
	tokens  TokenSource
}

// NewClient returns a Client for the API at baseURL. tokens may be nil.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &nethttp.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

type usersRequest struct {
	Action   string `json:"action"`
	Username string `json:"username"`
	Pin      string `json:"pin"`
}

type usersResponse struct {
	Success bool `json:"success"`
	User    struct {
		Username string `json:"username"`
	} `json:"user"`
	Token string `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Client) Register(ctx context.Context, username, pin string) (ports.AuthResult, error) {
	return c.users(ctx, "register", username, pin)
}

func (c *Client) Login(ctx context.Context, username, pin string) (ports.AuthResult, error) {
	return c.users(ctx, "login", username, pin)
}

func (c *Client) users(ctx context.Context, action, username, pin string) (ports.AuthResult, error) {
	var out usersResponse
	if err := c.do(ctx, nethttp.MethodPost, "/api/users", nil, usersRequest{Action: action, Username: username, Pin: pin}, &out); err != nil {
		return ports.AuthResult{}, err
	}
	return ports.AuthResult{Username: out.User.Username, Token: out.Token}, nil
}

// Load fetches the stored document; the server answers {} when none exists.
func (c *Client) Load(ctx context.Context, username string) (domain.Document, error) {
	doc := domain.Document{}
	if err := c.do(ctx, nethttp.MethodGet, "/api/data", url.Values{"username": {username}}, nil, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Save replaces the stored document.
func (c *Client) Save(ctx context.Context, username string, doc domain.Document) error {
	if doc == nil {
		doc = domain.Document{}
	}
	return c.do(ctx, nethttp.MethodPost, "/api/data", url.Values{"username": {username}}, doc, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := nethttp.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, path, domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return statusError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w: %w", domain.ErrTransport, err)
	}
	return nil
}

// StatusError is a non-2xx answer. Error returns the server's message and
// Unwrap the matching domain error.
type StatusError struct {
	Code int
	Msg  string
	kind error
}

func (e *StatusError) Error() string { return e.Msg }

func (e *StatusError) Unwrap() error { return e.kind }

func statusError(resp *nethttp.Response) error {
	var er errorResponse
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&er)
	msg := er.Error
	if msg == "" {
		msg = nethttp.StatusText(resp.StatusCode)
	}

	var kind error
	switch resp.StatusCode {
	case nethttp.StatusBadRequest:
		kind = domain.ErrInvalidInput
	case nethttp.StatusUnauthorized, nethttp.StatusForbidden:
		kind = domain.ErrUnauthorized
	case nethttp.StatusConflict:
		kind = domain.ErrConflict
	case nethttp.StatusTooManyRequests:
		kind = domain.ErrTooManyAttempts
	default:
		kind = domain.ErrTransport
	}
	return &StatusError{Code: resp.StatusCode, Msg: msg, kind: kind}
}
