package model

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Plan represents a bookable visit package. Plans are static reference data
// seeded once and read-only from the client's perspective.
type Plan struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Name        string        `bson:"name"`
	Price       float64       `bson:"price"`
	Description string        `bson:"description"`
	Duration    int           `bson:"duration"` // hours
	MaxDogs     int           `bson:"max_dogs"`
	Image       string        `bson:"image,omitempty"`
}
