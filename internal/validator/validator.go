package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

const (
	ErrRequired     = "is required"
	ErrEmpty        = "must not be empty"
	ErrMinLength    = "must be at least %s characters long"
	ErrMaxLength    = "must be at most %s characters long"
	ErrMinItems     = "must contain at least %s item(s)"
	ErrGte          = "must be greater than or equal to %s"
	ErrLte          = "must be less than or equal to %s"
	ErrGenre        = "must be one of Action, Adventure, Comedy, Drama, Crime, Fantasy, Horror, Thriller, Sci-Fi"
	ErrPoster       = "must be a valid http(s) URL"
	ErrEmptyUpdate  = "must contain at least one field to update"
	ErrInvalidValue = "is invalid"
)

var posterRgx = regexp.MustCompile(`^https?://.+\..+`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their wire names
	validator.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}

		return name
	})

	validator.RegisterValidation("genre", validateGenre)
	validator.RegisterValidation("poster", validatePoster)

	return validator
}

func validateGenre(fl validator.FieldLevel) bool {
	return domain.IsGenre(fl.Field().String())
}

func validatePoster(fl validator.FieldLevel) bool {
	return posterRgx.MatchString(fl.Field().String())
}

// ToValidationError converts the result of Validate.Struct into a
// *domain.ValidationError. A nil error stays nil.
func ToValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &domain.ValidationError{
			Errors: []domain.FieldError{{Field: "body", Issue: err.Error()}},
		}
	}

	fieldErrs := make([]domain.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fieldErrs = append(fieldErrs, domain.FieldError{
			Field: fe.Field(),
			Issue: ValidationMessage(fe),
		})
	}

	return &domain.ValidationError{Errors: fieldErrs}
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min":
		if err.Kind() == reflect.Slice {
			return fmt.Sprintf(ErrMinItems, err.Param())
		}
		if err.Param() == "1" {
			return ErrEmpty
		}
		return fmt.Sprintf(ErrMinLength, err.Param())
	case "max":
		return fmt.Sprintf(ErrMaxLength, err.Param())
	case "gte":
		return fmt.Sprintf(ErrGte, err.Param())
	case "lte":
		return fmt.Sprintf(ErrLte, err.Param())
	case "genre":
		return ErrGenre
	case "poster":
		return ErrPoster
	default:
		return ErrInvalidValue
	}
}
