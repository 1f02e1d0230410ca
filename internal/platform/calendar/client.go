package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/talkserve/backend/internal/config"
)

// Event is the payload sent to the calendar connector.
type Event struct {
	Title     string    `json:"title"`
	StartsAt  time.Time `json:"starts_at"`
	Attendee  string    `json:"attendee"`
	Reference string    `json:"reference"`
}

// Client talks to the calendar connector over HTTP. The connector host and
// token are held here explicitly instead of in package-level state.
type Client struct {
	host   string
	token  string
	client *http.Client
}

// NewClient builds the connector client; Configured reports whether the
// environment carried credentials.
func NewClient(cfg config.CalendarConfig) *Client {
	return &Client{
		host:   strings.TrimRight(cfg.Host, "/"),
		token:  cfg.Token,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether the connector can be called.
func (c *Client) Configured() bool {
	return c.host != "" && c.token != ""
}

// CreateEvent posts one event and returns the connector's event id.
func (c *Client) CreateEvent(ctx context.Context, event Event) (string, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/events", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	res, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		raw, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("calendar connector: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("calendar connector: decode response: %w", err)
	}
	return parsed.ID, nil
}
