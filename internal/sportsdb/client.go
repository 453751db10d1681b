package sportsdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/matchday-service/internal/domain/matches"
	"github.com/preston-bernstein/matchday-service/internal/domain/players"
	"github.com/preston-bernstein/matchday-service/internal/domain/teams"
)

// Config controls how the client reaches TheSportsDB.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client reads TheSportsDB v1 JSON API and maps responses to domain models.
// Every method returns an explicit error; deciding what a failure means is
// left to the caller.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     resolveAPIKey(cfg.APIKey),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
	}
}

// SeasonEvents lists every event of a league season in upstream order.
func (c *Client) SeasonEvents(ctx context.Context, leagueID, season string) ([]matches.MatchEvent, error) {
	var payload eventsResponse
	params := url.Values{"id": {leagueID}, "s": {season}}
	if err := c.get(ctx, pathSeasonEvents, params, &payload); err != nil {
		return nil, err
	}
	return mapEvents(payload.Events), nil
}

// LookupEvent returns a single event or ErrNotFound.
func (c *Client) LookupEvent(ctx context.Context, id string) (matches.MatchEvent, error) {
	var payload eventsResponse
	if err := c.get(ctx, pathLookupEvent, url.Values{"id": {id}}, &payload); err != nil {
		return matches.MatchEvent{}, err
	}
	if len(payload.Events) == 0 {
		return matches.MatchEvent{}, fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	return mapEvent(payload.Events[0]), nil
}

// LookupTeam returns a single team or ErrNotFound.
func (c *Client) LookupTeam(ctx context.Context, id string) (teams.Team, error) {
	var payload teamsResponse
	if err := c.get(ctx, pathLookupTeam, url.Values{"id": {id}}, &payload); err != nil {
		return teams.Team{}, err
	}
	if len(payload.Teams) == 0 {
		return teams.Team{}, fmt.Errorf("team %s: %w", id, ErrNotFound)
	}
	return mapTeam(payload.Teams[0]), nil
}

// TeamPlayers returns a team's roster in upstream order. An absent roster is
// an empty slice, not an error.
func (c *Client) TeamPlayers(ctx context.Context, teamID string) ([]players.Player, error) {
	var payload rosterResponse
	if err := c.get(ctx, pathTeamPlayers, url.Values{"id": {teamID}}, &payload); err != nil {
		return nil, err
	}
	return mapPlayers(payload.Player), nil
}

// LookupPlayer returns a single player or ErrNotFound.
func (c *Client) LookupPlayer(ctx context.Context, id string) (players.Player, error) {
	var payload playerLookupResponse
	if err := c.get(ctx, pathLookupPlayer, url.Values{"id": {id}}, &payload); err != nil {
		return players.Player{}, err
	}
	if len(payload.Players) == 0 {
		return players.Player{}, fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	return mapPlayer(payload.Players[0]), nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	req, err := c.buildRequest(ctx, endpoint, params)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sportsdb: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Message:    "sportsdb: " + endpoint + ": rate limited",
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return &StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		// An empty body is how the free tier answers some unknown ids.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("sportsdb: %s: decode: %w", endpoint, err)
	}
	return nil
}

func (c *Client) buildRequest(ctx context.Context, endpoint string, params url.Values) (*http.Request, error) {
	target := c.baseURL + "/" + url.PathEscape(c.apiKey) + "/" + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("Accept", "application/json")
	return req, nil
}
