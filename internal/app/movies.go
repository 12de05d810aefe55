package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/movie-catalog/api"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

const MovieDeletedMessage = "Movie deleted"

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request, params api.GetMoviesParams) {
	movies, err := app.movieRepo.GetAll(r.Context(), toMovieFilters(params))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiMovies(movies), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovieById(w http.ResponseWriter, r *http.Request, id string) {
	movie, err := app.movieRepo.GetById(r.Context(), id)
	if err != nil {
		app.handleMovieError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiMovie(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var input api.CreateMovieJSONRequestBody

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie, err := app.movieValidator.ValidateCreate(toDomainInput(input))
	if err != nil {
		app.handleMovieError(w, r, err)
		return
	}

	created, err := app.movieRepo.Create(r.Context(), movie)
	if err != nil {
		app.handleMovieError(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("movie created", "movie_id", created.ID)

	err = app.writeJSON(w, http.StatusCreated, toApiMovie(created), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request, id string) {
	var input api.UpdateMovieJSONRequestBody

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	patch, err := app.movieValidator.ValidateUpdate(toDomainInput(input))
	if err != nil {
		app.handleMovieError(w, r, err)
		return
	}

	updated, err := app.movieRepo.Update(r.Context(), id, *patch)
	if err != nil {
		app.handleMovieError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiMovie(updated), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// DeleteMovie reports a missing movie with 400 rather than 404; existing
// clients depend on that status.
func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request, id string) {
	deleted, err := app.movieRepo.Delete(r.Context(), id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if !deleted {
		app.movieNotFoundResponse(w, r, http.StatusBadRequest)
		return
	}

	app.contextGetLogger(r).Info("movie deleted", "movie_id", id)

	err = app.writeJSON(w, http.StatusOK, api.MessageResponse{Message: MovieDeletedMessage}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// handleMovieError maps repository and validation errors to responses.
func (app *Application) handleMovieError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		app.failedValidationResponse(w, r, validationErr)
	case errors.Is(err, domain.ErrRecordNotFound):
		app.movieNotFoundResponse(w, r, http.StatusNotFound)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

func toMovieFilters(params api.GetMoviesParams) domain.MovieFilters {
	var filters domain.MovieFilters

	if params.Genre != nil {
		filters.Genre = *params.Genre
	}

	return filters
}

func toDomainInput(input api.MovieInput) domain.MovieInput {
	return domain.MovieInput{
		Title:    input.Title,
		Year:     input.Year,
		Director: input.Director,
		Duration: input.Duration,
		Rate:     input.Rate,
		Poster:   input.Poster,
		Genre:    input.Genre,
	}
}

func toApiMovies(movies []*domain.Movie) []api.Movie {
	resp := make([]api.Movie, len(movies))

	for i, movie := range movies {
		resp[i] = toApiMovie(movie)
	}

	return resp
}

func toApiMovie(movie *domain.Movie) api.Movie {
	if movie == nil {
		return api.Movie{}
	}

	genre := movie.Genre
	if genre == nil {
		genre = []string{}
	}

	return api.Movie{
		Id:       movie.ID,
		Title:    movie.Title,
		Year:     movie.Year,
		Director: movie.Director,
		Duration: movie.Duration,
		Rate:     movie.Rate,
		Poster:   movie.Poster,
		Genre:    genre,
	}
}
