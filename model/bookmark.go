package model

import (
	"slices"
	"time"
)

type Bookmark struct {
	ID          string    `bson:"_id" json:"_id"`
	URL         string    `bson:"url" json:"url"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Tags        []string  `bson:"tags" json:"tags"`
	IsFavorite  bool      `bson:"is_favorite" json:"isFavorite"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

func (b *Bookmark) GetID() string { return b.ID }

func (b *Bookmark) Stamp(id string, now time.Time) {
	b.ID = id
	b.CreatedAt = now
	b.UpdatedAt = now
}

func (b *Bookmark) Touch(now time.Time) { b.UpdatedAt = now }

func (b *Bookmark) Clone() *Bookmark {
	c := *b
	c.Tags = slices.Clone(b.Tags)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return &c
}

// SearchFields includes the description alongside title and URL.
func (b *Bookmark) SearchFields() []string { return []string{b.Title, b.URL, b.Description} }
func (b *Bookmark) TagList() []string      { return b.Tags }
func (b *Bookmark) Favorite() bool         { return b.IsFavorite }
