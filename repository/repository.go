package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"notemark/model"
)

// Store is the access contract for a resource collection. Listing is
// newest first. Returned values are copies.
type Store[E model.Entity[E]] interface {
	Create(ctx context.Context, item E) (E, error)
	Get(ctx context.Context, id string) (E, error)
	Update(ctx context.Context, id string, apply func(E) error) (E, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]E, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}

type (
	NoteStore     = Store[*model.Note]
	BookmarkStore = Store[*model.Bookmark]
)

// NewID returns a time-ordered UUIDv7, falling back to a random UUID.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

type storeOptions struct {
	now   func() time.Time
	newID func() string
}

type Option func(*storeOptions)

// WithClock overrides time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *storeOptions) { o.now = now }
}

// WithIDGenerator overrides NewID.
func WithIDGenerator(newID func() string) Option {
	return func(o *storeOptions) { o.newID = newID }
}

func buildOptions(opts []Option) storeOptions {
	o := storeOptions{now: time.Now, newID: NewID}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
