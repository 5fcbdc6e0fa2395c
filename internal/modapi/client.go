package modapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Service is the remote moderation surface the console consumes. The concrete
// implementation is Client; tests and decorators substitute their own.
type Service interface {
	GetQueue(ctx context.Context, q QueueQuery) ([]QueueItem, error)
	Analyze(ctx context.Context, content string) (*AnalysisResult, error)
	TakeAction(ctx context.Context, itemID string, req ActionRequest) (*ActionResult, error)
	BulkAction(ctx context.Context, req BulkActionRequest) ([]BulkOutcome, error)
	GetAppeals(ctx context.Context, q AppealQuery) ([]Appeal, error)
	SubmitAppeal(ctx context.Context, req AppealRequest) (*AppealResult, error)
	GetFilters(ctx context.Context, q FilterQuery) (map[string]FilterRule, error)
	CreateFilter(ctx context.Context, rule map[string]any) (FilterRule, error)
	GetStatistics(ctx context.Context, q StatsQuery) (*StatisticsSnapshot, error)
}

// APIError is a non-2xx response from the moderation backend. Message carries
// the server-supplied human-readable text when the body had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("moderation api: %s (HTTP %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("moderation api: HTTP %d", e.StatusCode)
}

// Client talks JSON over HTTP to the moderation backend.
type Client struct {
	Client    *http.Client
	Host      string
	AuthToken string
	UserAgent string
}

var _ Service = (*Client)(nil)

func NewClient(host, token string) *Client {
	return &Client{
		Client:    http.DefaultClient,
		Host:      strings.TrimRight(host, "/"),
		AuthToken: token,
		UserAgent: "modconsole",
	}
}

func (c *Client) httpClient() *http.Client {
	if c.Client == nil {
		return http.DefaultClient
	}
	return c.Client
}

// envelope is the standard response wrapper. Data stays raw until the caller
// knows its shape; a missing or null data field decodes to defaults, never an
// error.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any) (json.RawMessage, error) {
	u := c.Host + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AuthToken)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var env envelope
	// A malformed body is tolerated: env stays zero and callers fall back to
	// defaults on success paths.
	_ = json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	return env.Data, nil
}

func (c *Client) GetQueue(ctx context.Context, q QueueQuery) ([]QueueItem, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/moderation/queue", encodeQuery(q), nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Items []QueueItem `json:"items"`
	}
	_ = json.Unmarshal(data, &out)
	if out.Items == nil {
		return []QueueItem{}, nil
	}
	return out.Items, nil
}

func (c *Client) Analyze(ctx context.Context, content string) (*AnalysisResult, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/moderation/analyze", nil, map[string]string{"content": content})
	if err != nil {
		return nil, err
	}
	var res AnalysisResult
	_ = json.Unmarshal(data, &res)
	return &res, nil
}

func (c *Client) TakeAction(ctx context.Context, itemID string, req ActionRequest) (*ActionResult, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/moderation/queue/"+url.PathEscape(itemID)+"/action", nil, req)
	if err != nil {
		return nil, err
	}
	var res ActionResult
	_ = json.Unmarshal(data, &res)
	return &res, nil
}

// BulkAction returns whatever per-item outcomes the backend sent. A data
// field that is missing, null, or not an array decodes to nil without error;
// the caller counts successes over a nil slice as zero.
func (c *Client) BulkAction(ctx context.Context, req BulkActionRequest) ([]BulkOutcome, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/moderation/bulk", nil, req)
	if err != nil {
		return nil, err
	}
	var outcomes []BulkOutcome
	_ = json.Unmarshal(data, &outcomes)
	return outcomes, nil
}

func (c *Client) GetAppeals(ctx context.Context, q AppealQuery) ([]Appeal, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/moderation/appeals", encodeQuery(q), nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Appeals []Appeal `json:"appeals"`
	}
	_ = json.Unmarshal(data, &out)
	if out.Appeals == nil {
		return []Appeal{}, nil
	}
	return out.Appeals, nil
}

func (c *Client) SubmitAppeal(ctx context.Context, req AppealRequest) (*AppealResult, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/moderation/appeals", nil, req)
	if err != nil {
		return nil, err
	}
	var res AppealResult
	_ = json.Unmarshal(data, &res)
	return &res, nil
}

func (c *Client) GetFilters(ctx context.Context, q FilterQuery) (map[string]FilterRule, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/moderation/filters", encodeQuery(q), nil)
	if err != nil {
		return nil, err
	}
	var rules map[string]FilterRule
	_ = json.Unmarshal(data, &rules)
	if rules == nil {
		return map[string]FilterRule{}, nil
	}
	return rules, nil
}

func (c *Client) CreateFilter(ctx context.Context, rule map[string]any) (FilterRule, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/moderation/filters", nil, rule)
	if err != nil {
		return nil, err
	}
	var created FilterRule
	_ = json.Unmarshal(data, &created)
	return created, nil
}

func (c *Client) GetStatistics(ctx context.Context, q StatsQuery) (*StatisticsSnapshot, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/moderation/statistics", encodeQuery(q), nil)
	if err != nil {
		return nil, err
	}
	var snap StatisticsSnapshot
	_ = json.Unmarshal(data, &snap)
	return &snap, nil
}
