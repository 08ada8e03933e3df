package worker

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"sliceco/config"
	"sliceco/internal/domain/entity"
	"sliceco/internal/domain/repository"
	"sliceco/internal/infra/logfile"
	"sliceco/internal/infra/storage/disk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(t *testing.T, now time.Time) (*workerServer, repository.DocumentStore, *logfile.Log) {
	t.Helper()

	store, err := disk.NewStore(t.TempDir())
	require.NoError(t, err)

	oplog, err := logfile.NewLog(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Maintenance.GCInterval = time.Hour
	cfg.Maintenance.LogRotationInterval = time.Hour

	srv := &workerServer{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		store:  store,
		oplog:  oplog,
		stop:   make(chan struct{}),
		now:    func() time.Time { return now },
	}

	return srv, store, oplog
}

func TestWorker_CollectExpired(t *testing.T) {
	now := time.Now()
	srv, store, _ := newTestWorker(t, now)
	ctx := context.Background()

	expired := &entity.Token{ID: "expired", UserID: "u1", ExpiresAt: now.Add(-time.Minute)}
	live := &entity.Token{ID: "live", UserID: "u1", ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, store.Create(ctx, repository.CollectionTokens, expired.ID, expired))
	require.NoError(t, store.Create(ctx, repository.CollectionTokens, live.ID, live))

	staleCart := &entity.Cart{ID: "stale", UserID: "u1", ExpiresAt: now.Add(-time.Hour)}
	freshCart := &entity.Cart{ID: "fresh", UserID: "u1", ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, store.Create(ctx, repository.CollectionCarts, staleCart.ID, staleCart))
	require.NoError(t, store.Create(ctx, repository.CollectionCarts, freshCart.ID, freshCart))

	srv.collectExpired(ctx)

	tokens, err := store.List(ctx, repository.CollectionTokens)
	require.NoError(t, err)
	assert.Equal(t, []string{"live"}, tokens)

	carts, err := store.List(ctx, repository.CollectionCarts)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, carts)
}

func TestWorker_CollectExpired_BoundaryCountsAsExpired(t *testing.T) {
	now := time.Now()
	srv, store, _ := newTestWorker(t, now)
	ctx := context.Background()

	token := &entity.Token{ID: "boundary", UserID: "u1", ExpiresAt: now}
	require.NoError(t, store.Create(ctx, repository.CollectionTokens, token.ID, token))

	srv.collectExpired(ctx)

	tokens, err := store.List(ctx, repository.CollectionTokens)
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestWorker_CollectExpired_SkipsDocsWithoutExpiry(t *testing.T) {
	now := time.Now()
	srv, store, _ := newTestWorker(t, now)
	ctx := context.Background()

	// A document with no expires field decodes to a zero time and must survive.
	doc := map[string]string{"cartId": "odd"}
	require.NoError(t, store.Create(ctx, repository.CollectionCarts, "odd", doc))

	srv.collectExpired(ctx)

	carts, err := store.List(ctx, repository.CollectionCarts)
	require.NoError(t, err)
	assert.Equal(t, []string{"odd"}, carts)
}

func TestWorker_CollectExpired_LeavesOtherCollectionsAlone(t *testing.T) {
	now := time.Now()
	srv, store, _ := newTestWorker(t, now)
	ctx := context.Background()

	// Users and orders carry no expiry and are never swept.
	user := &entity.User{ID: "u1"}
	require.NoError(t, store.Create(ctx, repository.CollectionUsers, user.ID, user))

	srv.collectExpired(ctx)

	users, err := store.List(ctx, repository.CollectionUsers)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, users)
}

func TestWorker_RotateLogs(t *testing.T) {
	srv, _, oplog := newTestWorker(t, time.Now())

	require.NoError(t, oplog.Message("something happened", nil))

	srv.rotateLogs()

	all, err := oplog.List(true)
	require.NoError(t, err)
	// The live file remains (empty) and one archive appeared.
	assert.Len(t, all, 2)
}

func TestWorker_ServeStopsOnShutdown(t *testing.T) {
	srv, _, _ := newTestWorker(t, time.Now())

	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(context.Background())
	}()

	require.NoError(t, srv.shutdown(context.Background()))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
}
