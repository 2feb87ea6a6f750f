package setapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/rehttp"
	"github.com/tidwall/gjson"

	"github.com/abhisek/flashquiz/internal/deck"
)

// Default transport settings.
const (
	DefaultTimeout    = 15 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryBase  = 200 * time.Millisecond
	DefaultRetryMax   = 2 * time.Second

	maxErrorBody = 512
)

// TokenSource supplies the bearer token for requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client fetches flashcard sets from the backend.
type Client struct {
	baseURL    *url.URL
	tokens     TokenSource
	httpClient *http.Client
	logger     *slog.Logger

	timeout    time.Duration
	maxRetries int
	retryBase  time.Duration
	retryMax   time.Duration
	transport  http.RoundTripper
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the overall per-request timeout, retries included.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRetry sets how often transient failures are retried and the
// exponential backoff bounds between attempts.
func WithRetry(maxRetries int, base, maxDelay time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.retryBase = base
		c.retryMax = maxDelay
	}
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.transport = rt }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    u,
		tokens:     tokens,
		timeout:    DefaultTimeout,
		maxRetries: DefaultMaxRetries,
		retryBase:  DefaultRetryBase,
		retryMax:   DefaultRetryMax,
		transport:  http.DefaultTransport,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}

	retry := rehttp.RetryAll(
		rehttp.RetryMaxRetries(c.maxRetries),
		rehttp.RetryHTTPMethods(http.MethodGet),
		rehttp.RetryAny(
			rehttp.RetryStatuses(http.StatusTooManyRequests, http.StatusBadGateway,
				http.StatusServiceUnavailable, http.StatusGatewayTimeout),
			rehttp.RetryIsErr(isTransient),
		),
	)
	c.httpClient = &http.Client{
		Timeout:   c.timeout,
		Transport: rehttp.NewTransport(c.transport, retry, rehttp.ExpJitterDelay(c.retryBase, c.retryMax)),
	}
	return c, nil
}

func isTransient(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// FetchSet retrieves a set and its cards from GET /api/sets/{id}.
func (c *Client) FetchSet(ctx context.Context, setID string) (*deck.Set, error) {
	body, err := c.get(ctx, "api", "sets", setID)
	if err != nil {
		return nil, err
	}

	payload := body
	if wrapped := gjson.Get(body, "set"); wrapped.IsObject() {
		payload = wrapped.Raw
	}
	if err := validateSet(payload); err != nil {
		return nil, err
	}

	set := &deck.Set{
		ID:      gjson.Get(payload, "id").String(),
		Name:    firstString(payload, "name", "title"),
		Subject: gjson.Get(payload, "subject").String(),
	}
	if set.ID == "" {
		set.ID = setID
	}
	for _, card := range gjson.Get(payload, "cards").Array() {
		set.Cards = append(set.Cards, deck.Card{
			ID:       card.Get("id").String(),
			Question: card.Get("question").String(),
			Answer:   card.Get("answer").String(),
		})
	}

	c.logger.Debug("fetched set", "id", set.ID, "cards", len(set.Cards))
	return set, nil
}

// ListSets retrieves the user's sets from GET /api/sets. The response may be
// a bare array or an object with a "sets" array.
func (c *Client) ListSets(ctx context.Context) ([]deck.SetSummary, error) {
	body, err := c.get(ctx, "api", "sets")
	if err != nil {
		return nil, err
	}

	list := gjson.Parse(body)
	if !list.IsArray() {
		list = list.Get("sets")
	}
	if !list.IsArray() {
		return nil, &ErrInvalidResponse{Err: errors.New("expected an array of sets")}
	}

	var out []deck.SetSummary
	for _, item := range list.Array() {
		id := item.Get("id").String()
		if id == "" {
			continue
		}
		count := int(item.Get("cardCount").Int())
		if cards := item.Get("cards"); cards.IsArray() {
			count = len(cards.Array())
		}
		out = append(out, deck.SetSummary{
			ID:        id,
			Name:      firstString(item.Raw, "name", "title"),
			Subject:   item.Get("subject").String(),
			CardCount: count,
			Source:    "remote",
		})
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, segments ...string) (string, error) {
	u := c.baseURL.JoinPath(segments...)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err == nil {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "url", u.String(), "err", err)
		return "", fmt.Errorf("GET %s: %w", u.Path, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	c.logger.Debug("request done", "url", u.String(), "status", resp.StatusCode, "took", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return "", ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return "", ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", &StatusError{StatusCode: resp.StatusCode, Body: truncate(errorMessage(b), maxErrorBody)}
	}
	return string(b), nil
}

// errorMessage extracts {"error": "..."} or {"message": "..."} when present.
func errorMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		for _, path := range []string{"error", "message"} {
			if v := gjson.GetBytes(body, path); v.Type == gjson.String {
				return v.String()
			}
		}
	}
	return strings.TrimSpace(string(body))
}

func firstString(raw string, paths ...string) string {
	for _, p := range paths {
		if v := gjson.Get(raw, p).String(); v != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
