package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metinatakli/movie-catalog/api"
	"github.com/metinatakli/movie-catalog/internal/mocks"
	"github.com/metinatakli/movie-catalog/internal/validator"
	"github.com/prometheus/client_golang/prometheus"
)

func newTestApplication(opts ...func(*Application)) *Application {
	validate := validator.NewValidator()

	app := &Application{
		config:         Config{Env: "test", Storage: StorageMemory},
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		validator:      validate,
		movieValidator: validator.NewMovieValidator(validate),
		movieRepo:      &mocks.MockMovieRepo{},
		registry:       prometheus.NewRegistry(),
		limiter:        newClientLimiter(LimiterConfig{}, time.Now),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader io.Reader

	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	t.Helper()

	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	var errorResp api.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}

	if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
		t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
	}
}

func decodeValidationErrors(t *testing.T, w *httptest.ResponseRecorder) api.ValidationErrorResponse {
	t.Helper()

	var resp api.ValidationErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode validation error response: %v", err)
	}

	return resp
}

func ptr[T any](v T) *T {
	return &v
}
