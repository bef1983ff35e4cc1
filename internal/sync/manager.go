// Package sync implements the conflict-aware roster synchronization engine.
package sync

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/scoutline/player-catalog-server/internal/domain"
	"github.com/scoutline/player-catalog-server/internal/logger"
	"github.com/scoutline/player-catalog-server/internal/provider"
	"github.com/scoutline/player-catalog-server/internal/store"
)

// defaultActivityConcurrency bounds the provider fan-out when resolving
// per-player activity status.
const defaultActivityConcurrency = 8

// Result contains the outcome of a successful club sync.
type Result struct {
	Inserted int64
	Modified int64
}

// Manager runs synchronization operations against the catalog.
//
//go:generate mockgen -destination=mocks/mock_manager.go -package=mocks -source=manager.go Manager
type Manager interface {
	// SyncClub pulls the club's roster from the provider, resolves each
	// player's activity status, and merges the batch into the store. The
	// run is all or nothing: any provider failure aborts before a single
	// document is written. Unless overwrite is set, documents flagged for
	// manual correction are left untouched by the merge.
	SyncClub(ctx context.Context, clubID string, overwrite bool) (*Result, error)
}

// defaultManager is the standard Manager implementation.
type defaultManager struct {
	provider    provider.Client
	store       store.PlayerStore
	concurrency int
}

// NewManager creates a Manager. A non-positive concurrency selects the
// default activity fan-out.
func NewManager(providerClient provider.Client, playerStore store.PlayerStore, concurrency int) Manager {
	if concurrency <= 0 {
		concurrency = defaultActivityConcurrency
	}
	return &defaultManager{
		provider:    providerClient,
		store:       playerStore,
		concurrency: concurrency,
	}
}

// SyncClub executes one complete sync run for a club.
func (m *defaultManager) SyncClub(ctx context.Context, clubID string, overwrite bool) (*Result, error) {
	runID := uuid.New().String()

	logger.Infof("Starting sync run %s for club %s (overwrite=%t)", runID, clubID, overwrite)

	players, err := m.provider.ListClubPlayers(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("sync run %s: %w", runID, err)
	}

	if len(players) == 0 {
		logger.Infof("Sync run %s: club %s has no players, nothing to merge", runID, clubID)
		return &Result{}, nil
	}

	if err := m.resolveActivity(ctx, clubID, players); err != nil {
		return nil, fmt.Errorf("sync run %s: %w", runID, err)
	}

	merge, err := m.store.PutPlayers(ctx, players, overwrite)
	if err != nil {
		return nil, fmt.Errorf("sync run %s: %w", runID, err)
	}

	logger.Infof("Sync run %s for club %s complete: %d inserted, %d modified of %d players",
		runID, clubID, merge.Inserted, merge.Modified, len(players))

	return &Result{
		Inserted: merge.Inserted,
		Modified: merge.Modified,
	}, nil
}

// resolveActivity stamps each roster entry with its club id and its
// activity status from the provider. The fan-out is bounded and the first
// failure cancels the remaining lookups.
func (m *defaultManager) resolveActivity(ctx context.Context, clubID string, players []domain.Player) error {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(m.concurrency)

	for i := range players {
		players[i].ClubID = clubID

		group.Go(func() error {
			active, err := m.provider.GetActiveStatus(ctx, players[i].ID)
			if err != nil {
				return err
			}
			players[i].IsActive = active
			return nil
		})
	}

	return group.Wait()
}
