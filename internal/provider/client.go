package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/scoutline/player-catalog-server/internal/domain"
	"github.com/scoutline/player-catalog-server/internal/httpclient"
)

// HTTPProvider implements Client against the provider's REST API.
type HTTPProvider struct {
	httpClient httpclient.Client
	baseURL    string
}

// NewHTTPProvider creates a Client for the given base endpoint.
func NewHTTPProvider(httpClient httpclient.Client, endpoint string) *HTTPProvider {
	return &HTTPProvider{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(endpoint, "/"),
	}
}

// clubPlayersResponse is the provider's roster payload.
type clubPlayersResponse struct {
	Players []domain.Player `json:"players"`
}

// playerProfileResponse is the provider's profile payload. IsRetired is a
// pointer so that an absent field can be told apart from false.
type playerProfileResponse struct {
	IsRetired *bool `json:"isRetired"`
}

// ListClubPlayers fetches the club roster.
func (p *HTTPProvider) ListClubPlayers(ctx context.Context, clubID string) ([]domain.Player, error) {
	url := fmt.Sprintf("%s/clubs/%s/players", p.baseURL, clubID)

	body, err := p.httpClient.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch players for club %s: %w", clubID, err)
	}

	var response clubPlayersResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse players for club %s: %w", clubID, err)
	}

	return response.Players, nil
}

// GetActiveStatus fetches the player profile and derives activity from the
// retirement flag.
func (p *HTTPProvider) GetActiveStatus(ctx context.Context, playerID string) (bool, error) {
	url := fmt.Sprintf("%s/players/%s/profile", p.baseURL, playerID)

	body, err := p.httpClient.Get(ctx, url)
	if err != nil {
		return false, fmt.Errorf("failed to fetch profile for player %s: %w", playerID, err)
	}

	var response playerProfileResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return false, fmt.Errorf("failed to parse profile for player %s: %w", playerID, err)
	}

	if response.IsRetired == nil {
		return false, fmt.Errorf("player %s: %w", playerID, ErrActiveStatusUnavailable)
	}

	return !*response.IsRetired, nil
}
