package repository

import (
	"context"
	"errors"
	"time"

	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeInvalid  = "invalid"
	outcomeError    = "error"
)

// RepositoryMetrics holds the collectors shared by every instrumented repository.
type RepositoryMetrics struct {
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

func NewRepositoryMetrics(registerer prometheus.Registerer) *RepositoryMetrics {
	return &RepositoryMetrics{
		operations: promauto.With(registerer).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "movie_catalog",
				Subsystem: "repository",
				Name:      "operations_total",
				Help:      "Total number of movie repository operations",
			},
			[]string{"operation", "backend", "outcome"},
		),
		latency: promauto.With(registerer).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "movie_catalog",
				Subsystem: "repository",
				Name:      "operation_duration_seconds",
				Help:      "Movie repository operation duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"operation", "backend"},
		),
	}
}

// InstrumentedMovieRepository records the outcome and latency of every call.
type InstrumentedMovieRepository struct {
	next    domain.MovieRepository
	backend string
	metrics *RepositoryMetrics
}

func NewInstrumentedMovieRepository(next domain.MovieRepository, backend string, metrics *RepositoryMetrics) *InstrumentedMovieRepository {
	return &InstrumentedMovieRepository{
		next:    next,
		backend: backend,
		metrics: metrics,
	}
}

func (i *InstrumentedMovieRepository) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, error) {
	start := time.Now()
	movies, err := i.next.GetAll(ctx, filters)
	i.observe("get_all", start, outcome(err))

	return movies, err
}

func (i *InstrumentedMovieRepository) GetById(ctx context.Context, id string) (*domain.Movie, error) {
	start := time.Now()
	movie, err := i.next.GetById(ctx, id)
	i.observe("get_by_id", start, outcome(err))

	return movie, err
}

func (i *InstrumentedMovieRepository) Create(ctx context.Context, movie *domain.Movie) (*domain.Movie, error) {
	start := time.Now()
	created, err := i.next.Create(ctx, movie)
	i.observe("create", start, outcome(err))

	return created, err
}

func (i *InstrumentedMovieRepository) Update(ctx context.Context, id string, patch domain.MoviePatch) (*domain.Movie, error) {
	start := time.Now()
	updated, err := i.next.Update(ctx, id, patch)
	i.observe("update", start, outcome(err))

	return updated, err
}

func (i *InstrumentedMovieRepository) Delete(ctx context.Context, id string) (bool, error) {
	start := time.Now()
	deleted, err := i.next.Delete(ctx, id)

	result := outcome(err)
	if err == nil && !deleted {
		result = outcomeNotFound
	}
	i.observe("delete", start, result)

	return deleted, err
}

func (i *InstrumentedMovieRepository) observe(operation string, start time.Time, result string) {
	i.metrics.operations.WithLabelValues(operation, i.backend, result).Inc()
	i.metrics.latency.WithLabelValues(operation, i.backend).Observe(time.Since(start).Seconds())
}

func outcome(err error) string {
	var validationErr *domain.ValidationError

	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, domain.ErrRecordNotFound):
		return outcomeNotFound
	case errors.As(err, &validationErr):
		return outcomeInvalid
	default:
		return outcomeError
	}
}
