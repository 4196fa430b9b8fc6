package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strconv"
	"strings"
	"time"

	"courtside/internal/config"
)

// Client talks to the game recaps service. It is safe for use from a single
// goroutine per request; the underlying http.Client handles its own pooling.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

func NewClient(cfg *config.Config) *Client {
	timeout := time.Duration(cfg.API.TimeoutSeconds) * time.Second
	return &Client{
		baseURL:   strings.TrimRight(cfg.API.BaseURL, "/"),
		userAgent: cfg.API.UserAgent,
		http:      &http.Client{Timeout: timeout},
	}
}

// Games fetches the listing for a mode: GET /games/previous or /games/today.
func (c *Client) Games(ctx context.Context, mode Mode) ([]Game, error) {
	var games []Game
	if err := c.getJSON(ctx, "/games/"+string(mode), &games); err != nil {
		return nil, fmt.Errorf("fetching %s games: %w", mode, err)
	}
	return games, nil
}

// RefreshToday forces a score refresh: GET /games/today/refresh. A 429 comes
// back as *RateLimitError carrying the server's detail and wait hint.
func (c *Client) RefreshToday(ctx context.Context) ([]Game, error) {
	var games []Game
	if err := c.getJSON(ctx, "/games/today/refresh", &games); err != nil {
		return nil, fmt.Errorf("refreshing today's games: %w", err)
	}
	return games, nil
}

// Summary fetches the generated narrative for one game. A 404 wraps
// ErrSummaryNotFound.
func (c *Client) Summary(ctx context.Context, gameID string) (*GameSummary, error) {
	var s GameSummary
	path := "/games/" + neturl.PathEscape(gameID) + "/summary"
	if err := c.getJSON(ctx, path, &s); err != nil {
		return nil, fmt.Errorf("fetching summary for game %s: %w", gameID, err)
	}
	return &s, nil
}

// errorBody is the JSON shape of non-2xx responses. FastAPI-style services
// put the message under "detail"; the refresh endpoint adds the wait hint.
type errorBody struct {
	Detail            string          `json:"detail"`
	RetryAfterSeconds json.RawMessage `json:"retryAfterSeconds"`
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return &RateLimitError{
			Detail:            eb.Detail,
			RetryAfterSeconds: retryAfterSeconds(eb.RetryAfterSeconds, resp.Header.Get("Retry-After")),
		}
	case http.StatusNotFound:
		if eb.Detail != "" {
			return fmt.Errorf("%w: %s", ErrSummaryNotFound, eb.Detail)
		}
		return ErrSummaryNotFound
	}
	return &StatusError{StatusCode: resp.StatusCode, Detail: eb.Detail}
}

// retryAfterSeconds extracts the wait hint, preferring the JSON body field
// and falling back to a Retry-After header in delta-seconds or HTTP-date
// form. Returns 0 when no usable hint is present.
func retryAfterSeconds(raw json.RawMessage, header string) int {
	var n int
	if len(raw) > 0 && json.Unmarshal(raw, &n) == nil && n > 0 {
		return n
	}
	h := strings.TrimSpace(header)
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(h); err == nil && secs > 0 {
		return secs
	}
	if t, err := time.Parse(http.TimeFormat, h); err == nil {
		if d := time.Until(t); d > 0 {
			return int(d / time.Second)
		}
	}
	return 0
}
