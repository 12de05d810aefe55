package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/shopspring/decimal"
)

const movieColumns = `id, title, year, director, duration, rate, poster, genre, created_at, updated_at`

// updatableColumns maps patch field names to the columns they are written to.
var updatableColumns = map[string]string{
	"title":    "title",
	"year":     "year",
	"director": "director",
	"duration": "duration",
	"rate":     "rate",
	"poster":   "poster",
	"genre":    "genre",
}

type PostgresMovieRepository struct {
	db        *pgxpool.Pool
	validator movieValidator
}

func NewPostgresMovieRepository(db *pgxpool.Pool, validator movieValidator) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db:        db,
		validator: validator,
	}
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, error) {
	query := `SELECT ` + movieColumns + `
		FROM movies
		WHERE $1 = '' OR EXISTS (
			SELECT 1 FROM jsonb_array_elements_text(genre::jsonb) AS g(name)
			WHERE g.name ILIKE '%' || $1 || '%')
		ORDER BY created_at, id`

	rows, err := p.db.Query(ctx, query, escapeLike(filters.Genre))
	if err != nil {
		return nil, domain.NewStoreError("list movies", err)
	}
	defer rows.Close()

	movies := []*domain.Movie{}

	for rows.Next() {
		var row movieRow

		if err := rows.Scan(row.scanTargets()...); err != nil {
			return nil, domain.NewStoreError("list movies", err)
		}

		movie, err := row.toMovie()
		if err != nil {
			return nil, domain.NewStoreError("list movies", err)
		}

		movies = append(movies, movie)
	}

	if err = rows.Err(); err != nil {
		return nil, domain.NewStoreError("list movies", err)
	}

	return movies, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id string) (*domain.Movie, error) {
	uid, ok := parseRowID(id)
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	var row movieRow

	err := p.db.QueryRow(ctx, query, uid).Scan(row.scanTargets()...)
	if err != nil {
		return nil, lookupError("get movie", err)
	}

	movie, err := row.toMovie()
	if err != nil {
		return nil, domain.NewStoreError("get movie", err)
	}

	return movie, nil
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) (*domain.Movie, error) {
	if err := p.validator.ValidateMovie(movie); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, domain.NewStoreError("create movie", err)
	}

	genre, err := encodeGenre(movie.Genre)
	if err != nil {
		return nil, domain.NewStoreError("create movie", err)
	}

	query := `INSERT INTO movies (id, title, year, director, duration, rate, poster, genre)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + movieColumns

	var row movieRow

	err = p.db.QueryRow(ctx,
		query,
		id,
		movie.Title,
		movie.Year,
		movie.Director,
		movie.Duration,
		decimal.NewFromFloat(movie.Rate),
		movie.Poster,
		genre).Scan(row.scanTargets()...)

	if err != nil {
		return nil, domain.NewStoreError("create movie", err)
	}

	created, err := row.toMovie()
	if err != nil {
		return nil, domain.NewStoreError("create movie", err)
	}

	return created, nil
}

// Update merges patch into the stored movie, validates the result and writes
// only the supplied columns. The read and the write are separate statements;
// a row deleted in between is reported as not found.
func (p *PostgresMovieRepository) Update(ctx context.Context, id string, patch domain.MoviePatch) (*domain.Movie, error) {
	current, err := p.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := patch.Apply(*current)
	if err := p.validator.ValidateMovie(&merged); err != nil {
		return nil, err
	}

	changes := patch.Changes()
	if len(changes) == 0 {
		return current, nil
	}

	sets := make([]string, 0, len(changes)+1)
	args := make([]any, 0, len(changes)+1)

	for _, change := range changes {
		column, ok := updatableColumns[change.Name]
		if !ok {
			return nil, fmt.Errorf("unknown movie field %q", change.Name)
		}

		value, err := columnValue(change)
		if err != nil {
			return nil, domain.NewStoreError("update movie", err)
		}

		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, uuid.MustParse(current.ID))

	query := fmt.Sprintf(`UPDATE movies SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), movieColumns)

	var row movieRow

	err = p.db.QueryRow(ctx, query, args...).Scan(row.scanTargets()...)
	if err != nil {
		return nil, lookupError("update movie", err)
	}

	updated, err := row.toMovie()
	if err != nil {
		return nil, domain.NewStoreError("update movie", err)
	}

	return updated, nil
}

func (p *PostgresMovieRepository) Delete(ctx context.Context, id string) (bool, error) {
	uid, ok := parseRowID(id)
	if !ok {
		return false, nil
	}

	tag, err := p.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, uid)
	if err != nil {
		return false, domain.NewStoreError("delete movie", err)
	}

	return tag.RowsAffected() > 0, nil
}

func columnValue(change domain.FieldChange) (any, error) {
	switch change.Name {
	case "rate":
		return decimal.NewFromFloat(change.Value.(float64)), nil
	case "genre":
		return encodeGenre(change.Value.([]string))
	default:
		return change.Value, nil
	}
}

// lookupError maps errors of single row lookups by id.
func lookupError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrRecordNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation {
		return domain.ErrRecordNotFound
	}

	return domain.NewStoreError(op, err)
}
