package repository

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// movieDocument is the shape of a movie in the movies collection.
type movieDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Year      int                `bson:"year"`
	Director  string             `bson:"director"`
	Duration  int                `bson:"duration"`
	Rate      float64            `bson:"rate"`
	Poster    string             `bson:"poster"`
	Genre     []string           `bson:"genre"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func newMovieDocument(movie *domain.Movie, now time.Time) movieDocument {
	return movieDocument{
		Title:     movie.Title,
		Year:      movie.Year,
		Director:  movie.Director,
		Duration:  movie.Duration,
		Rate:      movie.Rate,
		Poster:    movie.Poster,
		Genre:     movie.Genre,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (d *movieDocument) toMovie() *domain.Movie {
	genre := d.Genre
	if genre == nil {
		genre = []string{}
	}

	return &domain.Movie{
		ID:       d.ID.Hex(),
		Title:    d.Title,
		Year:     d.Year,
		Director: d.Director,
		Duration: d.Duration,
		Rate:     d.Rate,
		Poster:   d.Poster,
		Genre:    genre,
	}
}

// movieRow is a row of the movies table as scanned by pgx.
type movieRow struct {
	ID        pgtype.UUID
	Title     string
	Year      int
	Director  string
	Duration  int
	Rate      pgtype.Numeric
	Poster    string
	Genre     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *movieRow) scanTargets() []any {
	return []any{
		&r.ID,
		&r.Title,
		&r.Year,
		&r.Director,
		&r.Duration,
		&r.Rate,
		&r.Poster,
		&r.Genre,
		&r.CreatedAt,
		&r.UpdatedAt,
	}
}

func (r *movieRow) toMovie() (*domain.Movie, error) {
	genre, err := decodeGenre(r.Genre)
	if err != nil {
		return nil, err
	}

	rate, err := r.Rate.Float64Value()
	if err != nil {
		return nil, fmt.Errorf("decode rate: %w", err)
	}

	return &domain.Movie{
		ID:       uuid.UUID(r.ID.Bytes).String(),
		Title:    r.Title,
		Year:     r.Year,
		Director: r.Director,
		Duration: r.Duration,
		Rate:     rate.Float64,
		Poster:   r.Poster,
		Genre:    genre,
	}, nil
}

func encodeGenre(genre []string) (string, error) {
	if genre == nil {
		genre = []string{}
	}

	b, err := json.Marshal(genre)
	if err != nil {
		return "", fmt.Errorf("encode genre: %w", err)
	}

	return string(b), nil
}

func decodeGenre(s string) ([]string, error) {
	genre := []string{}
	if s == "" {
		return genre, nil
	}

	if err := json.Unmarshal([]byte(s), &genre); err != nil {
		return nil, fmt.Errorf("decode genre: %w", err)
	}

	if genre == nil {
		genre = []string{}
	}

	return genre, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern using the default
// backslash escape character.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// parseRowID accepts only the canonical lowercase, dashed form of a UUID so a
// movie has exactly one id. Other spellings uuid.Parse allows are rejected.
func parseRowID(id string) (uuid.UUID, bool) {
	uid, err := uuid.Parse(id)
	if err != nil || uid.String() != id {
		return uuid.UUID{}, false
	}
	return uid, true
}

// parseDocumentID accepts only the lowercase hex form of an ObjectID.
func parseDocumentID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil || oid.Hex() != id {
		return primitive.NilObjectID, false
	}
	return oid, true
}
