package integration

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	adaptershttp "github.com/RishiPrasath/time-deposit-take-home-kata/internal/adapter/http"
	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/adapter/http/handler"
	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/adapter/repository/postgres"
	redisrepo "github.com/RishiPrasath/time-deposit-take-home-kata/internal/adapter/repository/redis"
	infraredis "github.com/RishiPrasath/time-deposit-take-home-kata/internal/infrastructure/redis"
	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/usecase"
	"github.com/RishiPrasath/time-deposit-take-home-kata/tests/testutil"
)

type testEnv struct {
	db     *testutil.TestDB
	router http.Handler
}

// newTestEnv wires the full HTTP stack against real postgres and redis.
func newTestEnv(t *testing.T, ctx context.Context) *testEnv {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)
	testDB.TruncateAll(ctx)

	pool := testDB.Pool

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { _ = redisClient.Close() })

	if err := redisClient.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("failed to flush redis: %v", err)
	}

	depositUC := usecase.NewDepositUseCase(
		postgres.NewTxManager(pool),
		postgres.NewDepositRepository(pool),
		postgres.NewULIDGenerator(),
		postgres.NewRetrier(),
		redisrepo.NewCache(redisClient),
		30*time.Second,
	)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		DepositHandler:   handler.NewDepositHandler(depositUC, nil),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: redisrepo.NewIdempotencyStore(redisClient),
	})

	return &testEnv{db: testDB, router: router}
}
