package app

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/movie-catalog/api"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

const (
	ErrInternalServer   = "The server encountered a problem and could not process your request"
	ErrNotFound         = "The requested resource not found"
	ErrMethodNotAllowed = "The method is not supported for this resource"
	ErrMovieNotFound    = "Movie not found"
	ErrInvalidInput     = "One or more fields have invalid values"
	ErrRateLimited      = "Rate limit exceeded"
)

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.contextGetLogger(r).Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, ErrMethodNotAllowed)
}

func (app *Application) movieNotFoundResponse(w http.ResponseWriter, r *http.Request, status int) {
	app.errorResponse(w, r, status, ErrMovieNotFound)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusTooManyRequests, ErrRateLimited)
}

// paramErrorResponse handles path and query parameters the router could not bind.
func (app *Application) paramErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.badRequestResponse(w, r, err)
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err *domain.ValidationError) {
	resp := api.ValidationErrorResponse{
		Message:   ErrInvalidInput,
		Error:     make([]api.ValidationError, len(err.Errors)),
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	for i, fe := range err.Errors {
		resp.Error[i] = api.ValidationError{
			Field: fe.Field,
			Issue: fe.Issue,
		}
	}

	if err := app.writeJSON(w, http.StatusBadRequest, resp, nil); err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}
