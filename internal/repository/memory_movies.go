package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

// MemoryMovieRepository keeps movies in process memory in insertion order.
// It backs local runs without a database and the handler tests.
type MemoryMovieRepository struct {
	mu        sync.RWMutex
	ids       []string
	items     map[string]domain.Movie
	validator movieValidator
}

func NewMemoryMovieRepository(validator movieValidator) *MemoryMovieRepository {
	return &MemoryMovieRepository{
		items:     make(map[string]domain.Movie),
		validator: validator,
	}
}

func (s *MemoryMovieRepository) GetAll(_ context.Context, filters domain.MovieFilters) ([]*domain.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	movies := []*domain.Movie{}
	for _, id := range s.ids {
		movie := cloneMovie(s.items[id])
		if filters.Genre == "" || movie.HasGenre(filters.Genre) {
			movies = append(movies, &movie)
		}
	}

	return movies, nil
}

func (s *MemoryMovieRepository) GetById(_ context.Context, id string) (*domain.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	movie, ok := s.items[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	movie = cloneMovie(movie)
	return &movie, nil
}

func (s *MemoryMovieRepository) Create(_ context.Context, movie *domain.Movie) (*domain.Movie, error) {
	if err := s.validator.ValidateMovie(movie); err != nil {
		return nil, err
	}

	created := cloneMovie(*movie)
	created.ID = uuid.NewString()

	s.mu.Lock()
	s.ids = append(s.ids, created.ID)
	s.items[created.ID] = created
	s.mu.Unlock()

	created = cloneMovie(created)
	return &created, nil
}

func (s *MemoryMovieRepository) Update(_ context.Context, id string, patch domain.MoviePatch) (*domain.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	merged := patch.Apply(current)
	if err := s.validator.ValidateMovie(&merged); err != nil {
		return nil, err
	}

	s.items[id] = merged

	merged = cloneMovie(merged)
	return &merged, nil
}

func (s *MemoryMovieRepository) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false, nil
	}

	delete(s.items, id)
	s.ids = slices.DeleteFunc(s.ids, func(v string) bool { return v == id })

	return true, nil
}

func cloneMovie(m domain.Movie) domain.Movie {
	m.Genre = slices.Clone(m.Genre)
	return m
}
