package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/metinatakli/movie-catalog/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoMovieRepository struct {
	col       *mongo.Collection
	validator movieValidator
	now       func() time.Time
}

func NewMongoMovieRepository(db *mongo.Database, validator movieValidator) *MongoMovieRepository {
	return &MongoMovieRepository{
		col:       db.Collection(moviesCollection),
		validator: validator,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (r *MongoMovieRepository) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, error) {
	filter := bson.M{}
	if filters.Genre != "" {
		// matches when any element of the genre array matches
		filter["genre"] = primitive.Regex{Pattern: regexp.QuoteMeta(filters.Genre), Options: "i"}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, domain.NewStoreError("list movies", err)
	}
	defer cur.Close(ctx)

	movies := []*domain.Movie{}
	for cur.Next(ctx) {
		var doc movieDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, domain.NewStoreError("list movies", err)
		}
		movies = append(movies, doc.toMovie())
	}

	if err := cur.Err(); err != nil {
		return nil, domain.NewStoreError("list movies", err)
	}

	return movies, nil
}

func (r *MongoMovieRepository) GetById(ctx context.Context, id string) (*domain.Movie, error) {
	oid, ok := parseDocumentID(id)
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	var doc movieDocument
	err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		return nil, findError("get movie", err)
	}

	return doc.toMovie(), nil
}

func (r *MongoMovieRepository) Create(ctx context.Context, movie *domain.Movie) (*domain.Movie, error) {
	if err := r.validator.ValidateMovie(movie); err != nil {
		return nil, err
	}

	doc := newMovieDocument(movie, r.now())

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, domain.NewStoreError("create movie", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, domain.NewStoreError("create movie", errors.New("unexpected inserted id type"))
	}
	doc.ID = oid

	return doc.toMovie(), nil
}

// Update merges patch into the stored movie, validates the result and sets
// only the supplied fields.
func (r *MongoMovieRepository) Update(ctx context.Context, id string, patch domain.MoviePatch) (*domain.Movie, error) {
	current, err := r.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := patch.Apply(*current)
	if err := r.validator.ValidateMovie(&merged); err != nil {
		return nil, err
	}

	changes := patch.Changes()
	if len(changes) == 0 {
		return current, nil
	}

	set := make(bson.D, 0, len(changes)+1)
	for _, change := range changes {
		set = append(set, bson.E{Key: change.Name, Value: change.Value})
	}
	set = append(set, bson.E{Key: "updatedAt", Value: r.now()})

	// id was already parsed by GetById
	oid, _ := parseDocumentID(id)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc movieDocument
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		return nil, findError("update movie", err)
	}

	return doc.toMovie(), nil
}

func (r *MongoMovieRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, ok := parseDocumentID(id)
	if !ok {
		return false, nil
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, domain.NewStoreError("delete movie", err)
	}

	return res.DeletedCount > 0, nil
}

func findError(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrRecordNotFound
	}

	return domain.NewStoreError(op, err)
}
