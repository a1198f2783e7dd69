package gateway

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

	"github.com/veiga/killer/internal/domain/model"
	"github.com/veiga/killer/internal/domain/types"
	"github.com/veiga/killer/pkg/logger"
	"github.com/veiga/killer/pkg/metrics"
)

// Default HTTP client configuration constants.
const (
	defaultHTTPTimeout = 15 * time.Second
	maxErrorBodyBytes  = 512
)

// Client talks to the remote game API over HTTP.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  logger.Logger
}

// ClientOption applies a configuration option to the Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) ClientOption {
	return func(c *Client) {
		if httpc != nil {
			c.httpc = httpc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpc.Timeout = d
		}
	}
}

// WithClientLogger sets a custom logger for the client.
func WithClientLogger(l logger.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a remote-API gateway rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultHTTPTimeout},
		logger:  logger.Named("gateway"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Players implements Gateway.
func (c *Client) Players(ctx context.Context) ([]model.Player, error) {
	var wire []wirePlayer
	if err := c.get(ctx, "players", "/api/players", &wire); err != nil {
		return nil, err
	}
	players := make([]model.Player, 0, len(wire))
	for _, p := range wire {
		players = append(players, p.toModel())
	}
	return players, nil
}

// Mission implements Gateway.
func (c *Client) Mission(ctx context.Context, player model.Player) (model.Assignment, error) {
	path := "/api/mission?player=" + url.QueryEscape(player.Display)
	var wire wireAssignment
	if err := c.get(ctx, "mission", path, &wire); err != nil {
		return model.Assignment{}, err
	}
	if wire.OK != nil && !*wire.OK {
		return model.Assignment{}, fmt.Errorf("%w: %s", ErrGateway, serverMessage(wire.Error))
	}
	return wire.toModel(player), nil
}

// ReportMissionDone implements Gateway.
func (c *Client) ReportMissionDone(ctx context.Context, playerID string) error {
	body := struct {
		PlayerID wireID `json:"player_id"`
	}{PlayerID: wireID(playerID)}
	return c.post(ctx, "mission_done", "/api/mission_done", body)
}

// SubmitGuess implements Gateway.
func (c *Client) SubmitGuess(ctx context.Context, g model.Guess) error {
	body := struct {
		PlayerID       wireID `json:"player_id"`
		AccusedID      wireID `json:"accused_killer_id"`
		GuessedMission string `json:"guessed_mission"`
	}{
		PlayerID:       wireID(g.PlayerID),
		AccusedID:      wireID(g.AccusedID),
		GuessedMission: g.MissionText,
	}
	return c.post(ctx, "guess", "/api/guess", body)
}

// Leaderboard implements Gateway.
func (c *Client) Leaderboard(ctx context.Context) ([]types.Row, error) {
	var rows []types.Row
	if err := c.get(ctx, "leaderboard", "/api/leaderboard", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ack mirrors the backend's {ok, error} mutation responses.
type ack struct {
	OK    *bool  `json:"ok,omitempty"`
	Error string `json:"error,omitempty"`
}

func (c *Client) get(ctx context.Context, endpoint, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGateway, err)
	}
	return c.do(endpoint, req, out)
}

func (c *Client) post(ctx context.Context, endpoint, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGateway, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGateway, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp ack
	if err := c.do(endpoint, req, &resp); err != nil {
		return err
	}
	if resp.OK != nil && !*resp.OK {
		return fmt.Errorf("%w: %s", ErrGateway, serverMessage(resp.Error))
	}
	return nil
}

func (c *Client) do(endpoint string, req *http.Request, out any) error {
	start := time.Now()
	res, err := c.httpc.Do(req)
	metrics.RecordGatewayLatency(endpoint, float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordGatewayRequest(endpoint, "error")
		return fmt.Errorf("%w: %s %s: %v", ErrGateway, req.Method, endpoint, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		metrics.RecordGatewayRequest(endpoint, "error")
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBodyBytes))
		c.logger.Warn(req.Context(), "gateway call failed",
			logger.String("endpoint", endpoint),
			logger.Int("status", res.StatusCode),
		)
		return fmt.Errorf("%w: %s %s (%d): %s", ErrGateway, req.Method, endpoint, res.StatusCode, strings.TrimSpace(string(body)))
	}

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			metrics.RecordGatewayRequest(endpoint, "error")
			return fmt.Errorf("%w: decode %s response: %v", ErrGateway, endpoint, err)
		}
	}
	metrics.RecordGatewayRequest(endpoint, "ok")
	return nil
}

func serverMessage(msg string) string {
	if strings.TrimSpace(msg) == "" {
		return "backend reported failure"
	}
	return msg
}
