package domain

import (
	"context"
	"slices"
	"strings"
)

type Genre string

const (
	Action    Genre = "Action"
	Adventure Genre = "Adventure"
	Comedy    Genre = "Comedy"
	Drama     Genre = "Drama"
	Crime     Genre = "Crime"
	Fantasy   Genre = "Fantasy"
	Horror    Genre = "Horror"
	Thriller  Genre = "Thriller"
	SciFi     Genre = "Sci-Fi"
)

// Genres lists every accepted genre in declaration order.
var Genres = []Genre{Action, Adventure, Comedy, Drama, Crime, Fantasy, Horror, Thriller, SciFi}

func IsGenre(s string) bool {
	return slices.Contains(Genres, Genre(s))
}

const DefaultRate = 5.0

type Movie struct {
	ID       string
	Title    string
	Year     int
	Director string
	Duration int
	Rate     float64
	Poster   string
	Genre    []string
}

// HasGenre reports whether any genre of the movie contains term, ignoring case.
func (m *Movie) HasGenre(term string) bool {
	term = strings.ToLower(term)

	for _, g := range m.Genre {
		if strings.Contains(strings.ToLower(g), term) {
			return true
		}
	}

	return false
}

// MovieInput carries client supplied movie fields. A nil field was not supplied.
type MovieInput struct {
	Title    *string   `json:"title" validate:"omitnil,min=1"`
	Year     *int      `json:"year" validate:"omitnil,gte=1900,lte=2025"`
	Director *string   `json:"director" validate:"omitnil,min=1"`
	Duration *int      `json:"duration" validate:"omitnil,gte=1"`
	Rate     *float64  `json:"rate" validate:"omitnil,gte=0,lte=10"`
	Poster   *string   `json:"poster" validate:"omitnil,poster"`
	Genre    *[]string `json:"genre" validate:"omitnil,min=1,dive,genre"`
}

// InputFromMovie returns an input with every field of m supplied.
func InputFromMovie(m *Movie) MovieInput {
	genre := slices.Clone(m.Genre)

	return MovieInput{
		Title:    &m.Title,
		Year:     &m.Year,
		Director: &m.Director,
		Duration: &m.Duration,
		Rate:     &m.Rate,
		Poster:   &m.Poster,
		Genre:    &genre,
	}
}

// MoviePatch is a validated partial update. Only non-nil fields are applied.
type MoviePatch struct {
	Title    *string
	Year     *int
	Director *string
	Duration *int
	Rate     *float64
	Poster   *string
	Genre    *[]string
}

func (p MoviePatch) IsEmpty() bool {
	return len(p.Changes()) == 0
}

// Apply returns a copy of m with the supplied fields replaced.
func (p MoviePatch) Apply(m Movie) Movie {
	m.Genre = slices.Clone(m.Genre)

	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Year != nil {
		m.Year = *p.Year
	}
	if p.Director != nil {
		m.Director = *p.Director
	}
	if p.Duration != nil {
		m.Duration = *p.Duration
	}
	if p.Rate != nil {
		m.Rate = *p.Rate
	}
	if p.Poster != nil {
		m.Poster = *p.Poster
	}
	if p.Genre != nil {
		m.Genre = slices.Clone(*p.Genre)
	}

	return m
}

// FieldChange is a single supplied field of a patch, keyed by its storage name.
type FieldChange struct {
	Name  string
	Value any
}

// Changes lists the supplied fields in a fixed order. Names are the same in
// every store, so adapters may use them as column or document keys.
func (p MoviePatch) Changes() []FieldChange {
	changes := make([]FieldChange, 0, 7)

	if p.Title != nil {
		changes = append(changes, FieldChange{Name: "title", Value: *p.Title})
	}
	if p.Year != nil {
		changes = append(changes, FieldChange{Name: "year", Value: *p.Year})
	}
	if p.Director != nil {
		changes = append(changes, FieldChange{Name: "director", Value: *p.Director})
	}
	if p.Duration != nil {
		changes = append(changes, FieldChange{Name: "duration", Value: *p.Duration})
	}
	if p.Rate != nil {
		changes = append(changes, FieldChange{Name: "rate", Value: *p.Rate})
	}
	if p.Poster != nil {
		changes = append(changes, FieldChange{Name: "poster", Value: *p.Poster})
	}
	if p.Genre != nil {
		changes = append(changes, FieldChange{Name: "genre", Value: slices.Clone(*p.Genre)})
	}

	return changes
}

type MovieFilters struct {
	Genre string
}

type MovieRepository interface {
	GetAll(ctx context.Context, filters MovieFilters) ([]*Movie, error)
	GetById(ctx context.Context, id string) (*Movie, error)
	Create(ctx context.Context, movie *Movie) (*Movie, error)
	Update(ctx context.Context, id string, patch MoviePatch) (*Movie, error)
	Delete(ctx context.Context, id string) (bool, error)
}
