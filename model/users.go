package model

import "time"

type User struct {
	UserID    string    `bson:"_id" json:"_id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password" json:"-"` // argon2id or bcrypt hash
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Identity is the user view attached to authenticated requests.
type Identity struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Identity() Identity {
	return Identity{ID: u.UserID, Name: u.Name, Email: u.Email}
}
