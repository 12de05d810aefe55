package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/movie-catalog/api"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t testing.TB, body io.Reader, expectedResponse string, ignore ...string) {
	t.Helper()

	var actual any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	var expected any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	skip := make(map[string]struct{}, len(keysToIgnore)+len(ignore))
	for k := range keysToIgnore {
		skip[k] = struct{}{}
	}
	for _, k := range ignore {
		skip[k] = struct{}{}
	}

	// ignore indeterministic fields while comparing
	clean(actual, skip)
	clean(expected, skip)

	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func clean(v any, skip map[string]struct{}) {
	switch v := v.(type) {
	case map[string]any:
		for k := range v {
			if _, ok := skip[k]; ok {
				delete(v, k)
				continue
			}
			clean(v[k], skip)
		}
	case []any:
		for _, item := range v {
			clean(item, skip)
		}
	}
}

func jsonBody(t testing.TB, v any) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(data)
}

func testMovieInput() map[string]any {
	return map[string]any{
		"title":    TestMovieTitle,
		"year":     TestMovieYear,
		"director": TestMovieDirector,
		"duration": TestMovieDuration,
		"rate":     TestMovieRate,
		"poster":   TestMoviePoster,
		"genre":    TestMovieGenre,
	}
}

func defaultTestMovie() *domain.Movie {
	return &domain.Movie{
		Title:    TestMovieTitle,
		Year:     TestMovieYear,
		Director: TestMovieDirector,
		Duration: TestMovieDuration,
		Rate:     TestMovieRate,
		Poster:   TestMoviePoster,
		Genre:    append([]string(nil), TestMovieGenre...),
	}
}

// insertTestMovie writes straight to the store, bypassing the HTTP layer.
func insertTestMovie(t testing.TB, app *TestApp, movie *domain.Movie) *domain.Movie {
	t.Helper()

	created, err := app.Repo.Create(context.Background(), movie)
	require.NoError(t, err)

	return created
}

func decodeMovie(t testing.TB, res *http.Response) api.Movie {
	t.Helper()

	var movie api.Movie
	require.NoError(t, json.NewDecoder(res.Body).Decode(&movie))

	return movie
}
