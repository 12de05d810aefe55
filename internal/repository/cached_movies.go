package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	movieCacheKeyPrefix      = "movie:"
	movieGenerationKeyPrefix = "movie-gen:"

	// minGenerationTTL bounds how long an invalidation is remembered. It
	// must outlast any store read that started before the invalidation.
	minGenerationTTL = time.Minute
)

var errStaleFill = errors.New("movie changed while it was being read")

func movieCacheKey(id string) string {
	return movieCacheKeyPrefix + id
}

// movieGenerationKey counts invalidations of one movie. A fill only lands
// when the count is unchanged since before the store read.
func movieGenerationKey(id string) string {
	return movieGenerationKeyPrefix + id
}

// CachedMovieRepository keeps single movies in Redis for ttl. Lists are never
// cached. Cache failures are logged and the call falls through to the store.
type CachedMovieRepository struct {
	next   domain.MovieRepository
	redis  redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedMovieRepository(
	next domain.MovieRepository,
	client redis.UniversalClient,
	ttl time.Duration,
	logger *slog.Logger,
) *CachedMovieRepository {
	return &CachedMovieRepository{
		next:   next,
		redis:  client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedMovieRepository) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, error) {
	return c.next.GetAll(ctx, filters)
}

func (c *CachedMovieRepository) GetById(ctx context.Context, id string) (*domain.Movie, error) {
	key := movieCacheKey(id)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var movie domain.Movie
		if err := json.Unmarshal(data, &movie); err == nil {
			return &movie, nil
		}
		c.logger.Warn("discarding unreadable cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("movie cache read failed", "key", key, "error", err)
	}

	// read before the store so an invalidation racing with this call is seen
	gen, genErr := readGeneration(ctx, c.redis, id)
	if genErr != nil {
		c.logger.Warn("movie cache generation read failed", "id", id, "error", genErr)
	}

	movie, err := c.next.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	if genErr == nil {
		c.fill(ctx, id, gen, movie)
	}

	return movie, nil
}

func (c *CachedMovieRepository) Create(ctx context.Context, movie *domain.Movie) (*domain.Movie, error) {
	return c.next.Create(ctx, movie)
}

func (c *CachedMovieRepository) Update(ctx context.Context, id string, patch domain.MoviePatch) (*domain.Movie, error) {
	movie, err := c.next.Update(ctx, id, patch)
	c.evict(ctx, id)
	if err != nil {
		return nil, err
	}

	return movie, nil
}

func (c *CachedMovieRepository) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := c.next.Delete(ctx, id)
	c.evict(ctx, id)

	return deleted, err
}

// fill caches movie unless the movie was invalidated after gen was read.
func (c *CachedMovieRepository) fill(ctx context.Context, id string, gen int64, movie *domain.Movie) {
	data, err := json.Marshal(movie)
	if err != nil {
		c.logger.Warn("movie cache encode failed", "id", id, "error", err)
		return
	}

	genKey := movieGenerationKey(id)

	err = c.redis.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, id)
		if err != nil {
			return err
		}
		if current != gen {
			return errStaleFill
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, movieCacheKey(id), data, c.ttl)
			return nil
		})

		return err
	}, genKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
		c.logger.Debug("skipping cache fill for changed movie", "id", id)
	default:
		c.logger.Warn("movie cache write failed", "id", id, "error", err)
	}
}

// evict drops the cached entry and bumps the generation in one transaction,
// which makes any fill that read the store earlier give up.
func (c *CachedMovieRepository) evict(ctx context.Context, id string) {
	genKey := movieGenerationKey(id)

	_, err := c.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, max(c.ttl, minGenerationTTL))
		pipe.Del(ctx, movieCacheKey(id))
		return nil
	})
	if err != nil {
		c.logger.Warn("movie cache eviction failed", "id", id, "error", err)
	}
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, client stringGetter, id string) (int64, error) {
	gen, err := client.Get(ctx, movieGenerationKey(id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	return gen, err
}
