package model

import "time"

// Entity is a record owned by a repository. E is the concrete pointer type,
// so Clone can hand out copies that never alias stored state.
type Entity[E any] interface {
	GetID() string
	Stamp(id string, now time.Time)
	Touch(now time.Time)
	Clone() E
}

// Filterable is what the list filter needs from a resource.
type Filterable interface {
	SearchFields() []string
	TagList() []string
	Favorite() bool
}

// ListQuery holds the raw list parameters exactly as received.
type ListQuery struct {
	Q        string `form:"q"`
	Tags     string `form:"tags"`
	Favorite string `form:"favorite"`
}
