package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Post represents a community feed entry. Likes hold the set of user ids
// that currently like the post; comments are an ordered sequence.
type Post struct {
	ID        bson.ObjectID   `bson:"_id,omitempty"`
	UserID    bson.ObjectID   `bson:"user"`
	Content   string          `bson:"content"`
	Image     string          `bson:"image,omitempty"`
	Likes     []bson.ObjectID `bson:"likes"`
	Comments  []Comment       `bson:"comments"`
	CreatedAt time.Time       `bson:"created_at"`
}

// Comment is an embedded comment on a post.
type Comment struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    bson.ObjectID `bson:"user"`
	Content   string        `bson:"content"`
	CreatedAt time.Time     `bson:"created_at"`
}
