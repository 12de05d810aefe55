package integration_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/metinatakli/movie-catalog/internal/app"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/metinatakli/movie-catalog/internal/repository"
	appvalidator "github.com/metinatakli/movie-catalog/internal/validator"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

type TestApp struct {
	App       *app.Application
	Repo      domain.MovieRepository
	Redis     *redis.Client
	MissingId string

	// reset empties the backing store and the cache
	reset func(ctx context.Context) error
	close func()
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	validator := appvalidator.NewValidator()
	movieValidator := appvalidator.NewMovieValidator(validator)

	testApp := &TestApp{}

	var (
		store    domain.MovieRepository
		truncate func(ctx context.Context) error
		closers  []func()
	)

	switch cfg.Storage {
	case app.StoragePostgres:
		db, err := app.NewDatabasePool(cfg)
		if err != nil {
			return nil, err
		}
		closers = append(closers, db.Close)

		store = repository.NewPostgresMovieRepository(db, movieValidator)
		truncate = func(ctx context.Context) error {
			_, err := db.Exec(ctx, "TRUNCATE movies")
			return err
		}
		testApp.MissingId = MissingPostgresId
	case app.StorageMongo:
		client, err := app.NewMongoClient(cfg)
		if err != nil {
			return nil, err
		}
		closers = append(closers, func() { _ = client.Disconnect(context.Background()) })

		database := client.Database(cfg.Mongo.Database)
		store = repository.NewMongoMovieRepository(database, movieValidator)
		truncate = func(ctx context.Context) error {
			_, err := database.Collection("movies").DeleteMany(ctx, bson.D{})
			return err
		}
		testApp.MissingId = MissingMongoId
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		for _, c := range closers {
			c()
		}
		return nil, err
	}
	closers = append(closers, func() { _ = redisClient.Close() })

	registry := app.NewRegistry()

	movieRepo := repository.NewCachedMovieRepository(store, redisClient, cfg.Redis.CacheTTL, logger)
	instrumented := repository.NewInstrumentedMovieRepository(movieRepo, cfg.Storage, repository.NewRepositoryMetrics(registry))

	testApp.App = app.NewApp(cfg, logger, validator, instrumented, registry)
	testApp.Repo = store
	testApp.Redis = redisClient
	testApp.reset = func(ctx context.Context) error {
		if err := truncate(ctx); err != nil {
			return err
		}
		return redisClient.FlushDB(ctx).Err()
	}
	testApp.close = func() {
		for _, c := range closers {
			c()
		}
	}

	return testApp, nil
}
