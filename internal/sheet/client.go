package sheet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Action discriminates the write requests understood by the sheet.
type Action string

const (
	ActionNewPost        Action = "new_post"
	ActionUpdatePost     Action = "update_post"
	ActionUpdateStatus   Action = "update_status"
	ActionDeletePost     Action = "delete_post"
	ActionNewComment     Action = "new_comment"
	ActionVerifyPassword Action = "verify_password"
)

// Gateway is the board's only view of the remote sheet.
// This interface is implemented by *Client and can be used for testing.
type Gateway interface {
	ListAll(ctx context.Context) (Listing, error)
	Submit(ctx context.Context, action Action, payload any) (Ack, error)
}

// Ensure Client implements Gateway at compile time.
var _ Gateway = (*Client)(nil)

// Client talks to the sheet web app over plain HTTP.
type Client struct {
	endpoint  *url.URL
	http      *http.Client
	userAgent string
}

const (
	DefaultEndpoint  = "http://127.0.0.1:8787/"
	defaultUserAgent = "splitboard/0.1"
	requestTimeout   = 10 * time.Second
	maxResponseBytes = 8 << 20
)

// NewClient builds a Client for the given web app URL.
func NewClient(endpoint string) (*Client, error) {
	u, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	return &Client{
		endpoint: u,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Endpoint returns the resolved web app URL.
func (c *Client) Endpoint() string {
	if c == nil || c.endpoint == nil {
		return ""
	}
	return c.endpoint.String()
}

// ListAll fetches every post and comment. Missing keys decode as empty lists.
func (c *Client) ListAll(ctx context.Context) (Listing, error) {
	if c == nil {
		return Listing{}, fmt.Errorf("client is nil")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint.String(), nil)
	if err != nil {
		return Listing{}, fmt.Errorf("create request: %w", err)
	}
	var payload ListResponse
	if err := c.do(req, &payload); err != nil {
		return Listing{}, err
	}

	listing := Listing{
		Posts:    make([]Post, 0, len(payload.Post)),
		Comments: make([]Comment, 0, len(payload.Comment)),
	}
	for _, rec := range payload.Post {
		post := rec.ToPost()
		if post.ID == "" {
			continue
		}
		listing.Posts = append(listing.Posts, post)
	}
	for _, rec := range payload.Comment {
		comment := rec.ToComment()
		if comment.PostID == "" || comment.Content == "" {
			continue
		}
		listing.Comments = append(listing.Comments, comment)
	}
	return listing, nil
}

// Submit sends one write request. A success=false answer is returned as a
// normal Ack, not an error.
func (c *Client) Submit(ctx context.Context, action Action, payload any) (Ack, error) {
	if c == nil {
		return Ack{}, fmt.Errorf("client is nil")
	}
	body, err := EncodePayload(action, payload)
	if err != nil {
		return Ack{}, err
	}
	form := url.Values{}
	form.Set("payload", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return Ack{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var ack Ack
	if err := c.do(req, &ack); err != nil {
		return Ack{}, err
	}
	return ack, nil
}

// EncodePayload renders payload as the JSON object carried in the form field,
// with action_type merged in.
func EncodePayload(action Action, payload any) (string, error) {
	fields := map[string]any{}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return "", fmt.Errorf("encode payload: %w", err)
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return "", fmt.Errorf("payload must be an object: %w", err)
		}
	}
	fields["action_type"] = string(action)
	out, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	return string(out), nil
}

func (c *Client) do(req *http.Request, dest any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: execute request: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: sheet returned status %d", ErrTransport, resp.StatusCode)
	}
	decoder := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes))
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrTransport, err)
	}
	return nil
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = DefaultEndpoint
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse endpoint %q: missing host", endpoint)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	u.Fragment = ""
	return u, nil
}
