package coordinator_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/scoutline/player-catalog-server/internal/config"
	"github.com/scoutline/player-catalog-server/internal/sync"
	"github.com/scoutline/player-catalog-server/internal/sync/coordinator"
	"github.com/scoutline/player-catalog-server/internal/sync/mocks"
	"github.com/scoutline/player-catalog-server/internal/telemetry"
)

func syncConfig(clubs ...string) *config.SyncConfig {
	return &config.SyncConfig{
		Clubs:    clubs,
		Interval: "1h",
	}
}

func TestCoordinator_RunsInitialPassOverAllClubs(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	manager := mocks.NewMockManager(ctrl)

	synced := make(chan string, 2)
	manager.EXPECT().
		SyncClub(gomock.Any(), gomock.Any(), false).
		DoAndReturn(func(_ context.Context, clubID string, _ bool) (*sync.Result, error) {
			synced <- clubID
			return &sync.Result{Inserted: 1}, nil
		}).
		Times(2)

	c := coordinator.New(manager, syncConfig("5", "12"), coordinator.WithMetrics(telemetry.NewMetrics()))

	started := make(chan error, 1)
	go func() {
		started <- c.Start(context.Background())
	}()

	var clubs []string
	for range 2 {
		select {
		case clubID := <-synced:
			clubs = append(clubs, clubID)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for initial sync pass")
		}
	}
	assert.ElementsMatch(t, []string{"5", "12"}, clubs)

	require.NoError(t, c.Stop())
	require.NoError(t, <-started)
}

func TestCoordinator_FailingClubDoesNotStopThePass(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	manager := mocks.NewMockManager(ctrl)

	synced := make(chan struct{}, 1)
	gomock.InOrder(
		manager.EXPECT().
			SyncClub(gomock.Any(), "5", true).
			Return(nil, errors.New("provider down")),
		manager.EXPECT().
			SyncClub(gomock.Any(), "12", true).
			DoAndReturn(func(context.Context, string, bool) (*sync.Result, error) {
				synced <- struct{}{}
				return &sync.Result{}, nil
			}),
	)

	cfg := syncConfig("5", "12")
	cfg.Overwrite = true

	c := coordinator.New(manager, cfg)

	started := make(chan error, 1)
	go func() {
		started <- c.Start(context.Background())
	}()

	select {
	case <-synced:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for second club sync")
	}

	require.NoError(t, c.Stop())
	require.NoError(t, <-started)
}

func TestCoordinator_StartRejectsBadInterval(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	manager := mocks.NewMockManager(ctrl)

	c := coordinator.New(manager, &config.SyncConfig{Clubs: []string{"5"}, Interval: "soon"})

	err := c.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sync interval")
}

func TestCoordinator_ContextCancelStopsTheLoop(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	manager := mocks.NewMockManager(ctrl)

	manager.EXPECT().
		SyncClub(gomock.Any(), "5", false).
		Return(&sync.Result{}, nil).
		AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())

	c := coordinator.New(manager, syncConfig("5"))

	started := make(chan error, 1)
	go func() {
		started <- c.Start(ctx)
	}()

	cancel()

	select {
	case err := <-started:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for coordinator to stop")
	}
}
