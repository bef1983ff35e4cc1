// Package provider talks to the external player data provider that the
// synchronization engine pulls rosters and activity status from.
package provider

import (
	"context"
	"errors"

	"github.com/scoutline/player-catalog-server/internal/domain"
)

// ErrActiveStatusUnavailable means the provider returned a player profile
// without a retirement flag. Activity status cannot be guessed, so a sync
// run hitting this must abort before writing anything.
var ErrActiveStatusUnavailable = errors.New("player activity status unavailable")

// Client fetches player data from the provider API.
//
//go:generate mockgen -destination=mocks/mock_provider.go -package=mocks -source=provider.go Client
type Client interface {
	// ListClubPlayers returns the current roster of the club. The returned
	// players carry no club id; the caller stamps it.
	ListClubPlayers(ctx context.Context, clubID string) ([]domain.Player, error)

	// GetActiveStatus reports whether the player is still active. It
	// returns ErrActiveStatusUnavailable when the provider's profile does
	// not state retirement either way.
	GetActiveStatus(ctx context.Context, playerID string) (bool, error)
}
