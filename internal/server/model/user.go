package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a cafe visitor identified by email. A user record is
// created the first time an email requests a sign-in code.
type User struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	Email          string        `bson:"email"`
	Username       string        `bson:"username,omitempty"`
	ProfilePicture string        `bson:"profile_picture,omitempty"`
	CreatedAt      time.Time     `bson:"created_at"`
}
