// Package coordinator schedules background roster synchronization runs.
package coordinator

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/scoutline/player-catalog-server/internal/config"
	"github.com/scoutline/player-catalog-server/internal/logger"
	pkgsync "github.com/scoutline/player-catalog-server/internal/sync"
	"github.com/scoutline/player-catalog-server/internal/telemetry"
)

// Coordinator manages background synchronization scheduling and execution.
type Coordinator interface {
	// Start begins background sync coordination. It blocks until the
	// context is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop gracefully stops the coordinator and waits for an in-flight
	// run to finish.
	Stop() error
}

// defaultCoordinator is the default implementation of Coordinator.
type defaultCoordinator struct {
	manager pkgsync.Manager
	config  *config.SyncConfig

	cancelFunc context.CancelFunc
	done       chan struct{}

	metrics *telemetry.Metrics
}

// Option is a function that configures the coordinator.
type Option func(*defaultCoordinator)

// WithMetrics sets the metrics sink for the coordinator.
func WithMetrics(metrics *telemetry.Metrics) Option {
	return func(c *defaultCoordinator) {
		c.metrics = metrics
	}
}

// New creates a new coordinator with injected dependencies.
func New(manager pkgsync.Manager, cfg *config.SyncConfig, opts ...Option) Coordinator {
	c := &defaultCoordinator{
		manager: manager,
		config:  cfg,
		done:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Start runs the scheduling loop. The first run happens immediately; after
// a run where any club failed, the next attempt is moved forward by an
// exponential backoff instead of waiting for the full interval.
func (c *defaultCoordinator) Start(ctx context.Context) error {
	interval, err := c.config.SyncInterval()
	if err != nil {
		return err
	}

	coordCtx, cancel := context.WithCancel(ctx)
	c.cancelFunc = cancel
	defer func() {
		close(c.done)
		logger.Infof("Sync coordinator shut down")
	}()

	logger.Infof("Starting sync coordinator for %d clubs, interval %s",
		len(c.config.Clubs), interval)

	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = 30 * time.Second
	retry.MaxInterval = interval

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			if c.syncAllClubs(coordCtx) {
				retry.Reset()
				timer.Reset(interval)
			} else {
				delay := retry.NextBackOff()
				logger.Warnf("Sync run had failures, retrying in %s", delay)
				timer.Reset(delay)
			}
		case <-coordCtx.Done():
			logger.Infof("Sync coordinator stopping")
			return nil
		}
	}
}

// Stop cancels the scheduling loop and waits for it to exit.
func (c *defaultCoordinator) Stop() error {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	<-c.done
	return nil
}

// syncAllClubs runs one sync pass over every configured club and reports
// whether all of them succeeded. A failing club does not stop the pass.
func (c *defaultCoordinator) syncAllClubs(ctx context.Context) bool {
	ok := true

	for _, clubID := range c.config.Clubs {
		if ctx.Err() != nil {
			return ok
		}

		start := time.Now()
		result, err := c.manager.SyncClub(ctx, clubID, c.config.Overwrite)
		if err != nil {
			logger.Errorf("Scheduled sync for club %s failed: %v", clubID, err)
			c.metrics.RecordSyncRun(clubID, time.Since(start), 0, 0, err)
			ok = false
			continue
		}

		c.metrics.RecordSyncRun(clubID, time.Since(start), result.Inserted, result.Modified, nil)
	}

	return ok
}
