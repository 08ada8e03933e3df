// Package worker hosts the maintenance delivery: periodic expiry garbage
// collection over the document store and rotation of the operational logs.
package worker

import (
	"context"
	"log/slog"
	"time"

	"sliceco/config"
	"sliceco/internal/delivery"
	"sliceco/internal/domain/lifecycle"
	"sliceco/internal/domain/repository"
	"sliceco/internal/infra/logfile"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// expiringDoc is the slice of a stored document the collector cares about.
// Any document carrying an "expires" field participates in garbage
// collection; documents without one decode to a zero time and are skipped.
type expiringDoc struct {
	ExpiresAt time.Time `json:"expires"`
}

// gcCollections are swept for expired documents. Users and orders have no
// expiry and are never collected.
var gcCollections = []string{repository.CollectionTokens, repository.CollectionCarts}

type workerServer struct {
	cfg    *config.Config
	logger *slog.Logger
	store  repository.DocumentStore
	oplog  *logfile.Log
	stop   chan struct{}

	now func() time.Time
}

// ServerParams holds dependencies for the maintenance worker
type ServerParams struct {
	fx.In

	Lc     fx.Lifecycle
	Cfg    *config.Config
	Logger *slog.Logger
	Store  repository.DocumentStore
	Oplog  *logfile.Log
}

// NewServer creates the maintenance worker delivery
func NewServer(params ServerParams) (delivery.Delivery, error) {
	srv := &workerServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		store:  params.Store,
		oplog:  params.Oplog,
		stop:   make(chan struct{}),
		now:    time.Now,
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.shutdown,
	})

	return srv, nil
}

// Serve runs one pass of each maintenance task immediately, then keeps both
// loops going on their configured intervals until the lifecycle stops them.
// Task failures are logged and the loop re-arms; a broken pass must not kill
// the process.
func (s *workerServer) Serve(ctx context.Context) error {
	s.logger.Info("Starting maintenance worker",
		slog.Duration("gc_interval", s.cfg.Maintenance.GCInterval),
		slog.Duration("log_rotation_interval", s.cfg.Maintenance.LogRotationInterval))

	s.collectExpired(ctx)
	s.rotateLogs()

	gcTimer := time.NewTimer(s.cfg.Maintenance.GCInterval)
	defer gcTimer.Stop()
	rotationTimer := time.NewTimer(s.cfg.Maintenance.LogRotationInterval)
	defer rotationTimer.Stop()

	for {
		select {
		case <-gcTimer.C:
			s.collectExpired(ctx)
			gcTimer.Reset(s.cfg.Maintenance.GCInterval)
		case <-rotationTimer.C:
			s.rotateLogs()
			rotationTimer.Reset(s.cfg.Maintenance.LogRotationInterval)
		case <-s.stop:
			s.logger.Info("Maintenance worker stopped")

			return nil
		case <-ctx.Done():
			return errors.WithStack(ctx.Err())
		}
	}
}

func (s *workerServer) shutdown(ctx context.Context) error {
	_, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down maintenance worker")
	close(s.stop)

	return nil
}

// collectExpired sweeps every GC-eligible collection and deletes documents
// whose expiry has passed. One bad document never aborts the sweep.
func (s *workerServer) collectExpired(ctx context.Context) {
	now := s.now()
	for _, collection := range gcCollections {
		keys, err := s.store.List(ctx, collection)
		if err != nil {
			s.logger.Error("Failed to list collection for GC",
				slog.String("collection", collection),
				slog.Any("error", err))

			continue
		}

		var removed int
		for _, key := range keys {
			var doc expiringDoc
			if err := s.store.Read(ctx, collection, key, &doc); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					// Deleted between list and read.
					continue
				}
				s.logger.Error("Failed to read document during GC",
					slog.String("collection", collection),
					slog.String("key", key),
					slog.Any("error", err))

				continue
			}

			if doc.ExpiresAt.IsZero() || doc.ExpiresAt.After(now) {
				continue
			}

			if err := s.store.Delete(ctx, collection, key); err != nil && !errors.Is(err, repository.ErrNotFound) {
				s.logger.Error("Failed to delete expired document",
					slog.String("collection", collection),
					slog.String("key", key),
					slog.Any("error", err))

				continue
			}
			removed++
		}

		if removed > 0 {
			s.logger.Info("Collected expired documents",
				slog.String("collection", collection),
				slog.Int("removed", removed))
			if err := s.oplog.Message("gc pass completed", map[string]any{
				"collection": collection,
				"removed":    removed,
			}); err != nil {
				s.logger.Error("Failed to record GC pass", slog.Any("error", err))
			}
		}
	}
}

// rotateLogs archives every non-empty live log file and truncates it.
func (s *workerServer) rotateLogs() {
	files, err := s.oplog.List(false)
	if err != nil {
		s.logger.Error("Failed to list log files for rotation", slog.Any("error", err))

		return
	}

	for _, file := range files {
		if err := s.oplog.Rotate(file); err != nil {
			s.logger.Error("Failed to rotate log file",
				slog.String("file", file),
				slog.Any("error", err))

			continue
		}
		s.logger.Debug("Rotated log file", slog.String("file", file))
	}
}
