package mocks

import (
	"context"

	"github.com/metinatakli/movie-catalog/internal/domain"
)

type MockMovieRepo struct {
	domain.MovieRepository
	GetAllFunc  func(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, error)
	GetByIdFunc func(ctx context.Context, id string) (*domain.Movie, error)
	CreateFunc  func(ctx context.Context, movie *domain.Movie) (*domain.Movie, error)
	UpdateFunc  func(ctx context.Context, id string, patch domain.MoviePatch) (*domain.Movie, error)
	DeleteFunc  func(ctx context.Context, id string) (bool, error)
}

func (m *MockMovieRepo) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, error) {
	return m.GetAllFunc(ctx, filters)
}

func (m *MockMovieRepo) GetById(ctx context.Context, id string) (*domain.Movie, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockMovieRepo) Create(ctx context.Context, movie *domain.Movie) (*domain.Movie, error) {
	return m.CreateFunc(ctx, movie)
}

func (m *MockMovieRepo) Update(ctx context.Context, id string, patch domain.MoviePatch) (*domain.Movie, error) {
	return m.UpdateFunc(ctx, id, patch)
}

func (m *MockMovieRepo) Delete(ctx context.Context, id string) (bool, error) {
	return m.DeleteFunc(ctx, id)
}
