package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/metinatakli/movie-catalog/api"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/metinatakli/movie-catalog/internal/repository"
	"github.com/metinatakli/movie-catalog/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryApplication() *Application {
	return newTestApplication(func(a *Application) {
		a.movieRepo = repository.NewMemoryMovieRepository(validator.NewMovieValidator(a.validator))
	})
}

func serve(t *testing.T, h http.Handler, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	w, r := executeRequest(t, method, url, body)
	h.ServeHTTP(w, r)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))

	return v
}

func TestMovieLifecycle(t *testing.T) {
	h := newMemoryApplication().Routes()

	input := map[string]any{
		"title":    "Test Movie Integration",
		"year":     2024,
		"director": "Test Director",
		"duration": 120,
		"rate":     8.5,
		"poster":   "https://example.com/test-poster.jpg",
		"genre":    []string{"Action", "Drama"},
	}

	w := serve(t, h, http.MethodPost, "/movies", input)
	require.Equal(t, http.StatusCreated, w.Code)

	created := decode[api.Movie](t, w)
	require.NotEmpty(t, created.Id)
	assert.Equal(t, api.Movie{
		Id:       created.Id,
		Title:    "Test Movie Integration",
		Year:     2024,
		Director: "Test Director",
		Duration: 120,
		Rate:     8.5,
		Poster:   "https://example.com/test-poster.jpg",
		Genre:    []string{"Action", "Drama"},
	}, created)

	w = serve(t, h, http.MethodGet, "/movies/"+created.Id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decode[api.Movie](t, w))

	w = serve(t, h, http.MethodPatch, "/movies/"+created.Id, map[string]any{
		"director": "Updated Director",
		"year":     2025,
	})
	require.Equal(t, http.StatusOK, w.Code)

	want := created
	want.Director = "Updated Director"
	want.Year = 2025
	assert.Equal(t, want, decode[api.Movie](t, w))

	w = serve(t, h, http.MethodDelete, "/movies/"+created.Id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, api.MessageResponse{Message: "Movie deleted"}, decode[api.MessageResponse](t, w))

	w = serve(t, h, http.MethodGet, "/movies/"+created.Id, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Movie not found", decode[api.ErrorResponse](t, w).Message)

	w = serve(t, h, http.MethodDelete, "/movies/"+created.Id, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Movie not found", decode[api.ErrorResponse](t, w).Message)
}

func TestCreateRejectsEachInvalidField(t *testing.T) {
	h := newMemoryApplication().Routes()

	valid := func() map[string]any {
		return map[string]any{
			"title":    "Invalid Movie",
			"year":     2000,
			"director": "Director",
			"duration": 100,
			"rate":     5,
			"poster":   "https://example.com/poster.jpg",
			"genre":    []string{"Action"},
		}
	}

	tests := []struct {
		field     string
		value     any
		wantField string
	}{
		{field: "year", value: 1800, wantField: "year"},
		{field: "rate", value: 15, wantField: "rate"},
		{field: "genre", value: []string{"InvalidGenre"}, wantField: "genre[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			body := valid()
			body[tt.field] = tt.value

			w := serve(t, h, http.MethodPost, "/movies", body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			resp := decode[api.ValidationErrorResponse](t, w)
			require.Len(t, resp.Error, 1)
			assert.Equal(t, tt.wantField, resp.Error[0].Field)
		})
	}

	w := serve(t, h, http.MethodGet, "/movies", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]api.Movie](t, w))
}

func TestSingleFieldUpdateChangesOnlyThatField(t *testing.T) {
	h := newMemoryApplication().Routes()

	w := serve(t, h, http.MethodPost, "/movies", map[string]any{
		"title":    "Original",
		"year":     2001,
		"director": "Someone",
		"duration": 90,
		"poster":   "http://example.com/p.png",
		"genre":    []string{"Comedy"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	original := decode[api.Movie](t, w)

	updates := []struct {
		field string
		value any
		apply func(m *api.Movie)
	}{
		{"title", "Renamed", func(m *api.Movie) { m.Title = "Renamed" }},
		{"year", 1999, func(m *api.Movie) { m.Year = 1999 }},
		{"director", "Another", func(m *api.Movie) { m.Director = "Another" }},
		{"duration", 95, func(m *api.Movie) { m.Duration = 95 }},
		{"rate", 0, func(m *api.Movie) { m.Rate = 0 }},
		{"poster", "https://example.com/q.png", func(m *api.Movie) { m.Poster = "https://example.com/q.png" }},
		{"genre", []string{"Horror", "Thriller"}, func(m *api.Movie) { m.Genre = []string{"Horror", "Thriller"} }},
	}

	want := original
	for _, u := range updates {
		w := serve(t, h, http.MethodPatch, "/movies/"+original.Id, map[string]any{u.field: u.value})
		require.Equal(t, http.StatusOK, w.Code, u.field)

		u.apply(&want)
		assert.Equal(t, want, decode[api.Movie](t, w), u.field)
	}
}

func TestGenreFilter(t *testing.T) {
	h := newMemoryApplication().Routes()

	catalog := [][]string{
		{"Action", "Sci-Fi"},
		{"Drama"},
		{"Comedy", "Drama"},
		{"Horror"},
	}

	for i, genre := range catalog {
		w := serve(t, h, http.MethodPost, "/movies", map[string]any{
			"title":    "Movie " + string(rune('A'+i)),
			"year":     2010,
			"director": "Director",
			"duration": 100,
			"poster":   "https://example.com/poster.jpg",
			"genre":    genre,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	for _, g := range domain.Genres {
		query := strings.ToUpper(string(g))

		w := serve(t, h, http.MethodGet, "/movies?genre="+query, nil)
		require.Equal(t, http.StatusOK, w.Code)

		movies := decode[[]api.Movie](t, w)

		want := 0
		for _, genre := range catalog {
			if slices.Contains(genre, string(g)) {
				want++
			}
		}
		assert.Len(t, movies, want, string(g))

		for _, m := range movies {
			assert.Contains(t, m.Genre, string(g))
		}
	}

	w := serve(t, h, http.MethodGet, "/movies", nil)
	assert.Len(t, decode[[]api.Movie](t, w), len(catalog))
}
