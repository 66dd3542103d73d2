package model

import (
	"slices"
	"time"
)

type Note struct {
	ID         string    `bson:"_id" json:"_id"`
	Title      string    `bson:"title" json:"title"`
	Content    string    `bson:"content" json:"content"`
	Tags       []string  `bson:"tags" json:"tags"`
	IsFavorite bool      `bson:"is_favorite" json:"isFavorite"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt"`
}

func (n *Note) GetID() string { return n.ID }

func (n *Note) Stamp(id string, now time.Time) {
	n.ID = id
	n.CreatedAt = now
	n.UpdatedAt = now
}

func (n *Note) Touch(now time.Time) { n.UpdatedAt = now }

func (n *Note) Clone() *Note {
	c := *n
	c.Tags = slices.Clone(n.Tags)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return &c
}

func (n *Note) SearchFields() []string { return []string{n.Title, n.Content} }
func (n *Note) TagList() []string      { return n.Tags }
func (n *Note) Favorite() bool         { return n.IsFavorite }
