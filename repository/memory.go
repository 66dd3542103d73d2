package repository

import (
	"context"
	"slices"
	"strings"
	"sync"

	"notemark/apperr"
	"notemark/model"
)

// MemoryStore keeps a collection in process memory, newest first.
type MemoryStore[E model.Entity[E]] struct {
	mu    sync.RWMutex
	items []E
	label string
	opts  storeOptions
}

// NewMemoryStore creates an empty store; label names the resource in
// not-found messages ("Note" -> "Note not found").
func NewMemoryStore[E model.Entity[E]](label string, opts ...Option) *MemoryStore[E] {
	return &MemoryStore[E]{
		items: make([]E, 0),
		label: label,
		opts:  buildOptions(opts),
	}
}

func NewMemoryNoteStore(opts ...Option) *MemoryStore[*model.Note] {
	return NewMemoryStore[*model.Note]("Note", opts...)
}

func NewMemoryBookmarkStore(opts ...Option) *MemoryStore[*model.Bookmark] {
	return NewMemoryStore[*model.Bookmark]("Bookmark", opts...)
}

func (s *MemoryStore[E]) notFound() error {
	return apperr.NotFound(s.label + " not found")
}

func (s *MemoryStore[E]) Create(_ context.Context, item E) (E, error) {
	stored := item.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	stored.Stamp(s.opts.newID(), s.opts.now())
	s.items = slices.Insert(s.items, 0, stored)

	return stored.Clone(), nil
}

func (s *MemoryStore[E]) Get(_ context.Context, id string) (E, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		var zero E
		return zero, s.notFound()
	}
	return s.items[i].Clone(), nil
}

// Update applies the change to a copy and swaps it in only if apply
// succeeds, so a failed update leaves the record untouched.
func (s *MemoryStore[E]) Update(_ context.Context, id string, apply func(E) error) (E, error) {
	var zero E

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return zero, s.notFound()
	}

	next := s.items[i].Clone()
	if err := apply(next); err != nil {
		return zero, err
	}
	next.Touch(s.opts.now())
	s.items[i] = next

	return next.Clone(), nil
}

func (s *MemoryStore[E]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return s.notFound()
	}
	s.items = slices.Delete(s.items, i, i+1)
	return nil
}

func (s *MemoryStore[E]) List(_ context.Context) ([]E, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]E, len(s.items))
	for i, item := range s.items {
		out[i] = item.Clone()
	}
	return out, nil
}

func (s *MemoryStore[E]) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(item E) bool { return item.GetID() == id })
}

// MemoryUserRepo stores users by id with an email index.
type MemoryUserRepo struct {
	mu      sync.RWMutex
	byID    map[string]*model.User
	byEmail map[string]string
	opts    storeOptions
}

func NewMemoryUserRepo(opts ...Option) *MemoryUserRepo {
	return &MemoryUserRepo{
		byID:    make(map[string]*model.User),
		byEmail: make(map[string]string),
		opts:    buildOptions(opts),
	}
}

// Create checks email uniqueness and inserts in one critical section.
func (r *MemoryUserRepo) Create(_ context.Context, user *model.User) error {
	email := strings.ToLower(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[email]; exists {
		return apperr.BadRequest("User already exists with this email")
	}

	if user.UserID == "" {
		user.UserID = r.opts.newID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.opts.now()
	}
	user.Email = email

	stored := *user
	r.byID[stored.UserID] = &stored
	r.byEmail[email] = stored.UserID
	return nil
}

func (r *MemoryUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	u := *r.byID[id]
	return &u, nil
}

func (r *MemoryUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	u := *user
	return &u, nil
}
