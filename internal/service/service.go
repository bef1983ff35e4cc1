// Package service provides the business logic for the player catalog API.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/scoutline/player-catalog-server/internal/domain"
	"github.com/scoutline/player-catalog-server/internal/store"
	"github.com/scoutline/player-catalog-server/internal/sync"
)

// ErrInvalidClubID is returned when a sync is requested without a club id.
var ErrInvalidClubID = errors.New("club id must not be empty")

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks -source=service.go PlayerService

// PlayerService defines the interface for catalog operations.
type PlayerService interface {
	// CheckReadiness checks if the service is ready to serve requests.
	CheckReadiness(ctx context.Context) error

	// GetPlayers returns one page of players matching the filter plus the
	// total matching count.
	GetPlayers(ctx context.Context, filter *domain.Filter, pagination *domain.Pagination) (*store.PlayerPage, error)

	// SyncClub runs one synchronization pass for the club.
	SyncClub(ctx context.Context, clubID string, overwrite bool) (*sync.Result, error)
}

// playerService is the default PlayerService implementation.
type playerService struct {
	store   store.PlayerStore
	manager sync.Manager
}

// NewPlayerService creates a PlayerService over the given store and sync
// manager.
func NewPlayerService(playerStore store.PlayerStore, manager sync.Manager) PlayerService {
	return &playerService{
		store:   playerStore,
		manager: manager,
	}
}

func (s *playerService) CheckReadiness(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("store not ready: %w", err)
	}
	return nil
}

func (s *playerService) GetPlayers(
	ctx context.Context, filter *domain.Filter, pagination *domain.Pagination,
) (*store.PlayerPage, error) {
	return s.store.GetPlayers(ctx, filter, pagination)
}

func (s *playerService) SyncClub(ctx context.Context, clubID string, overwrite bool) (*sync.Result, error) {
	if clubID == "" {
		return nil, ErrInvalidClubID
	}
	return s.manager.SyncClub(ctx, clubID, overwrite)
}
