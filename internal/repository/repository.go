package repository

import "github.com/metinatakli/movie-catalog/internal/domain"

const moviesCollection = "movies"

// movieValidator checks a full record before it is written.
type movieValidator interface {
	ValidateMovie(movie *domain.Movie) error
}
