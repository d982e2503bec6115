package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// VerificationCode is a short-lived one-time sign-in code for an email.
// At most one code is active per email; a new sign-in request replaces it.
type VerificationCode struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Email     string        `bson:"email"`
	Code      string        `bson:"code"`
	ExpiresAt time.Time     `bson:"expires_at"`
}
