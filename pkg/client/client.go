package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/naveenspark/memora/pkg/domain"
)

// DefaultTimeout bounds every request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Client is the memory game server API client.
type Client struct {
	baseURL    string
	clientID   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithClientID sets the X-Client-ID header sent with every request.
func WithClientID(id string) Option {
	return func(c *Client) { c.clientID = id }
}

// New creates a new API client.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server address the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// NewGame starts a regular game.
func (c *Client) NewGame(ctx context.Context, difficulty, theme string) (*domain.NewGameResponse, error) {
	var resp domain.NewGameResponse
	req := domain.NewGameRequest{Difficulty: difficulty, Theme: theme}
	if err := c.post(ctx, "/api/new-game", req, &resp); err != nil {
		return nil, fmt.Errorf("client.NewGame: %w", err)
	}
	if err := validateNewGame(&resp); err != nil {
		return nil, fmt.Errorf("client.NewGame: %w", err)
	}
	return &resp, nil
}

// DailyChallenge starts today's shared daily board.
func (c *Client) DailyChallenge(ctx context.Context) (*domain.NewGameResponse, error) {
	var resp domain.NewGameResponse
	if err := c.post(ctx, "/api/daily-challenge", struct{}{}, &resp); err != nil {
		return nil, fmt.Errorf("client.DailyChallenge: %w", err)
	}
	if err := validateNewGame(&resp); err != nil {
		return nil, fmt.Errorf("client.DailyChallenge: %w", err)
	}
	return &resp, nil
}

// FlipCard asks the server to reveal one card. A server-reported logical
// error arrives in the response's Error field, not as a Go error, when the
// server answers 2xx.
func (c *Client) FlipCard(ctx context.Context, gameID string, index int) (*domain.FlipResponse, error) {
	var resp domain.FlipResponse
	req := domain.FlipRequest{GameID: gameID, CardIndex: index}
	if err := c.post(ctx, "/api/flip-card", req, &resp); err != nil {
		return nil, fmt.Errorf("client.FlipCard: %w", err)
	}
	return &resp, nil
}

// UsePowerUp redeems a one-shot power-up.
func (c *Client) UsePowerUp(ctx context.Context, gameID, kind string) (*domain.PowerUpResponse, error) {
	var resp domain.PowerUpResponse
	req := domain.PowerUpRequest{GameID: gameID, PowerUp: kind}
	if err := c.post(ctx, "/api/use-powerup", req, &resp); err != nil {
		return nil, fmt.Errorf("client.UsePowerUp: %w", err)
	}
	return &resp, nil
}

// GetGameState fetches the server's view of a session.
func (c *Client) GetGameState(ctx context.Context, gameID string) (*domain.GameState, error) {
	var state domain.GameState
	if err := c.get(ctx, "/api/game-state/"+url.PathEscape(gameID), &state); err != nil {
		return nil, fmt.Errorf("client.GetGameState: %w", err)
	}
	return &state, nil
}

func validateNewGame(resp *domain.NewGameResponse) error {
	if resp.GameID == "" {
		return fmt.Errorf("response missing game_id")
	}
	if n := resp.CardCount(); n <= 0 || n%2 != 0 {
		return fmt.Errorf("invalid card count %d", n)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.clientID != "" {
		req.Header.Set("X-Client-ID", c.clientID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
