package validator

import (
	"errors"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

// MovieValidator holds the rules every stored movie must satisfy. The same
// instance is used by the handlers and by the storage adapters.
type MovieValidator struct {
	validate *validator.Validate
}

func NewMovieValidator(validate *validator.Validate) *MovieValidator {
	return &MovieValidator{validate: validate}
}

// ValidateCreate checks a complete candidate and returns the movie to store.
// Rate defaults to domain.DefaultRate when it is not supplied.
func (mv *MovieValidator) ValidateCreate(input domain.MovieInput) (*domain.Movie, error) {
	input = normalize(input)

	var fieldErrs []domain.FieldError
	for _, name := range missingFields(input) {
		fieldErrs = append(fieldErrs, domain.FieldError{Field: name, Issue: ErrRequired})
	}

	fieldErrs = append(fieldErrs, mv.check(input)...)
	if len(fieldErrs) > 0 {
		return nil, &domain.ValidationError{Errors: fieldErrs}
	}

	rate := domain.DefaultRate
	if input.Rate != nil {
		rate = *input.Rate
	}

	return &domain.Movie{
		Title:    *input.Title,
		Year:     *input.Year,
		Director: *input.Director,
		Duration: *input.Duration,
		Rate:     rate,
		Poster:   *input.Poster,
		Genre:    slices.Clone(*input.Genre),
	}, nil
}

// ValidateUpdate checks the supplied subset of fields. An input without any
// field is rejected.
func (mv *MovieValidator) ValidateUpdate(input domain.MovieInput) (*domain.MoviePatch, error) {
	input = normalize(input)

	patch := domain.MoviePatch(input)
	if patch.IsEmpty() {
		return nil, &domain.ValidationError{
			Errors: []domain.FieldError{{Field: "body", Issue: ErrEmptyUpdate}},
		}
	}

	if fieldErrs := mv.check(input); len(fieldErrs) > 0 {
		return nil, &domain.ValidationError{Errors: fieldErrs}
	}

	return &patch, nil
}

// ValidateMovie checks a full record, e.g. a stored movie merged with a patch.
func (mv *MovieValidator) ValidateMovie(movie *domain.Movie) error {
	input := domain.InputFromMovie(movie)

	if fieldErrs := mv.check(input); len(fieldErrs) > 0 {
		return &domain.ValidationError{Errors: fieldErrs}
	}

	return nil
}

func (mv *MovieValidator) check(input domain.MovieInput) []domain.FieldError {
	var validationErr *domain.ValidationError
	if errors.As(ToValidationError(mv.validate.Struct(input)), &validationErr) {
		return validationErr.Errors
	}

	return nil
}

func missingFields(input domain.MovieInput) []string {
	var missing []string

	if input.Title == nil {
		missing = append(missing, "title")
	}
	if input.Year == nil {
		missing = append(missing, "year")
	}
	if input.Director == nil {
		missing = append(missing, "director")
	}
	if input.Duration == nil {
		missing = append(missing, "duration")
	}
	if input.Poster == nil {
		missing = append(missing, "poster")
	}
	if input.Genre == nil {
		missing = append(missing, "genre")
	}

	return missing
}

// normalize trims surrounding whitespace of free text fields.
func normalize(input domain.MovieInput) domain.MovieInput {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		input.Title = &title
	}
	if input.Director != nil {
		director := strings.TrimSpace(*input.Director)
		input.Director = &director
	}

	return input
}
