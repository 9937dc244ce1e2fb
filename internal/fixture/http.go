package fixture

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

	"github.com/okian/simreveal/pkg/logger"
)

// ErrPush is returned when the service refuses part of a fixture.
var ErrPush = errors.New("push rejected")

const (
	defaultTimeout   = 30 * time.Second
	maxRetries       = 3
	retryBackoffBase = 200 * time.Millisecond
)

// Client pushes fixtures to a running service.
type Client struct {
	baseURL string
	client  *http.Client
	logger  logger.Logger
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  log,
	}
}

// Push sends every section f carries. The clock goes last so the service
// never serves it against the previous schedule.
func (c *Client) Push(ctx context.Context, f *Fixture) error {
	base := c.baseURL + "/v1/leagues/" + f.League.String()

	if f.Teams != nil {
		if err := c.put(ctx, base+"/teams", f.Teams); err != nil {
			return err
		}
	}
	if f.Standings != nil {
		if err := c.put(ctx, base+"/standings", f.Standings); err != nil {
			return err
		}
	}
	if f.Games != nil {
		if err := c.put(ctx, base+"/games", f.Games); err != nil {
			return err
		}
	}
	if f.Timestamp != nil {
		if err := c.put(ctx, base+"/timestamp", f.Timestamp); err != nil {
			return err
		}
	}
	return nil
}

// put sends body as JSON, retrying while the service reports backpressure.
func (c *Client) put(ctx context.Context, url string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	for attempt := 0; ; attempt++ {
		status, msg, err := c.do(ctx, url, payload)
		if err != nil {
			return err
		}
		switch {
		case status == http.StatusAccepted:
			c.logger.Info(ctx, "pushed", logger.String("url", url), logger.Int("bytes", len(payload)))
			return nil
		case status == http.StatusTooManyRequests && attempt < maxRetries:
			c.logger.Warn(ctx, "service busy, retrying", logger.String("url", url), logger.Int("attempt", attempt+1))
			select {
			case <-ctx.Done():
				return fmt.Errorf("push cancelled: %w", ctx.Err())
			case <-time.After(retryBackoffBase << attempt):
			}
		default:
			return fmt.Errorf("%w: %s: %d %s", ErrPush, url, status, msg)
		}
	}
}

func (c *Client) do(ctx context.Context, url string, payload []byte) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return 0, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", fmt.Errorf("failed to read response: %w", err)
	}
	var e struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &e) == nil && e.Message != "" {
		return resp.StatusCode, e.Message, nil
	}
	return resp.StatusCode, strings.TrimSpace(string(raw)), nil
}
