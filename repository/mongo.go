package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"notemark/apperr"
	"notemark/model"
	"notemark/utils"
)

const (
	NotesCollection     = "notes"
	BookmarksCollection = "bookmarks"
	UsersCollection     = "users"
)

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
}

// ConnectMongo dials and pings the server.
func ConnectMongo(ctx context.Context, cfg MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.URI)
	if cfg.MaxPoolSize > 0 {
		clientOptions.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	return client, nil
}

// SetupIndexes creates the unique email index that backs registration.
func SetupIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("unique_email").SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users indexes: %w", err)
	}

	return nil
}

// MongoStore implements Store over a collection. UUIDv7 ids sort by
// creation time, so newest first is _id descending.
type MongoStore[E model.Entity[E]] struct {
	coll  *mongo.Collection
	newE  func() E
	label string
	opts  storeOptions

	// serialises read-modify-write within this process
	mu sync.Mutex
}

func NewMongoStore[E model.Entity[E]](coll *mongo.Collection, label string, newE func() E, opts ...Option) *MongoStore[E] {
	return &MongoStore[E]{
		coll:  coll,
		newE:  newE,
		label: label,
		opts:  buildOptions(opts),
	}
}

func NewMongoNoteStore(db *mongo.Database, opts ...Option) *MongoStore[*model.Note] {
	return NewMongoStore(db.Collection(NotesCollection), "Note", func() *model.Note { return &model.Note{} }, opts...)
}

func NewMongoBookmarkStore(db *mongo.Database, opts ...Option) *MongoStore[*model.Bookmark] {
	return NewMongoStore(db.Collection(BookmarksCollection), "Bookmark", func() *model.Bookmark { return &model.Bookmark{} }, opts...)
}

// mongo keeps millisecond precision
func (s *MongoStore[E]) now() time.Time {
	return s.opts.now().UTC().Truncate(time.Millisecond)
}

func (s *MongoStore[E]) notFound() error {
	return apperr.NotFound(s.label + " not found")
}

func (s *MongoStore[E]) Create(ctx context.Context, item E) (E, error) {
	timer := utils.TrackDBOperation("insert", s.coll.Name())
	defer timer.ObserveDuration()

	var zero E
	stored := item.Clone()
	stored.Stamp(s.opts.newID(), s.now())

	if _, err := s.coll.InsertOne(ctx, stored); err != nil {
		return zero, apperr.Internal("failed to create "+strings.ToLower(s.label), err)
	}
	return stored, nil
}

func (s *MongoStore[E]) Get(ctx context.Context, id string) (E, error) {
	timer := utils.TrackDBOperation("find", s.coll.Name())
	defer timer.ObserveDuration()

	return s.find(ctx, id)
}

func (s *MongoStore[E]) find(ctx context.Context, id string) (E, error) {
	var zero E
	item := s.newE()
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return zero, s.notFound()
	}
	if err != nil {
		return zero, apperr.Internal("failed to load "+strings.ToLower(s.label), err)
	}
	return item, nil
}

func (s *MongoStore[E]) Update(ctx context.Context, id string, apply func(E) error) (E, error) {
	timer := utils.TrackDBOperation("update", s.coll.Name())
	defer timer.ObserveDuration()

	var zero E

	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.find(ctx, id)
	if err != nil {
		return zero, err
	}
	if err := apply(item); err != nil {
		return zero, err
	}
	item.Touch(s.now())

	result, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, item)
	if err != nil {
		return zero, apperr.Internal("failed to update "+strings.ToLower(s.label), err)
	}
	if result.MatchedCount == 0 {
		return zero, s.notFound()
	}
	return item, nil
}

func (s *MongoStore[E]) Delete(ctx context.Context, id string) error {
	timer := utils.TrackDBOperation("delete", s.coll.Name())
	defer timer.ObserveDuration()

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Internal("failed to delete "+strings.ToLower(s.label), err)
	}
	if result.DeletedCount == 0 {
		return s.notFound()
	}
	return nil
}

func (s *MongoStore[E]) List(ctx context.Context) ([]E, error) {
	timer := utils.TrackDBOperation("find", s.coll.Name())
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.Internal("failed to list "+strings.ToLower(s.label)+"s", err)
	}
	defer cursor.Close(ctx)

	items := make([]E, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, apperr.Internal("failed to decode "+strings.ToLower(s.label)+"s", err)
	}
	return items, nil
}

type MongoUserRepo struct {
	coll *mongo.Collection
	opts storeOptions
}

func NewMongoUserRepo(db *mongo.Database, opts ...Option) *MongoUserRepo {
	return &MongoUserRepo{
		coll: db.Collection(UsersCollection),
		opts: buildOptions(opts),
	}
}

// Create relies on the unique_email index for atomic duplicate detection.
func (r *MongoUserRepo) Create(ctx context.Context, user *model.User) error {
	timer := utils.TrackDBOperation("insert", UsersCollection)
	defer timer.ObserveDuration()

	if user.UserID == "" {
		user.UserID = r.opts.newID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.opts.now().UTC().Truncate(time.Millisecond)
	}
	user.Email = strings.ToLower(user.Email)

	_, err := r.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.BadRequest("User already exists with this email")
	}
	if err != nil {
		return apperr.Internal("failed to add user to database", err)
	}
	return nil
}

func (r *MongoUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (r *MongoUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepo) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	timer := utils.TrackDBOperation("find", UsersCollection)
	defer timer.ObserveDuration()

	var user model.User
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to load user", err)
	}
	return &user, nil
}
