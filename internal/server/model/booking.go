package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking represents a visit reservation owned by a user for a plan.
// Bookings are confirmed at creation and may only transition to cancelled,
// triggered by the owning user.
type Booking struct {
	ID              bson.ObjectID `bson:"_id,omitempty"`
	UserID          bson.ObjectID `bson:"user"`
	PlanID          bson.ObjectID `bson:"plan"`
	Date            string        `bson:"date"`
	Time            string        `bson:"time"`
	Status          BookingStatus `bson:"status"`
	SpecialRequests string        `bson:"special_requests,omitempty"`
	CreatedAt       time.Time     `bson:"created_at"`
}
