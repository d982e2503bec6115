package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dogcafe6ix/dogcafe-api/internal/server/model"
)

// BookingRepository defines the interface for booking-related database
// operations.
type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	GetBooking(ctx context.Context, id bson.ObjectID) (*model.Booking, error)

	// ListBookingsByUser returns the user's bookings, newest first.
	ListBookingsByUser(ctx context.Context, userID bson.ObjectID) ([]*model.Booking, error)

	// UpdateBookingStatus sets the status of a booking owned by the given
	// user. It returns mongo.ErrNoDocuments when no such booking exists.
	UpdateBookingStatus(
		ctx context.Context,
		id, userID bson.ObjectID,
		status model.BookingStatus,
	) (*model.Booking, error)
}

const bookingCollection = "bookings"

type bookingMongoRepository struct {
	db *mongo.Database
}

// NewBookingMongoRepository creates a new MongoDB repository for bookings.
func NewBookingMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) BookingRepository {
	collection := db.Collection(bookingCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user", Value: 1}, {Key: "created_at", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create booking indexes")
	}

	return &bookingMongoRepository{db: db}
}

func (r *bookingMongoRepository) CreateBooking(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	booking.CreatedAt = time.Now()

	result, err := r.db.Collection(bookingCollection).InsertOne(ctx, booking)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		booking.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return booking, nil
}

func (r *bookingMongoRepository) GetBooking(ctx context.Context, id bson.ObjectID) (*model.Booking, error) {
	result := r.db.Collection(bookingCollection).FindOne(ctx, bson.M{"_id": id})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var booking model.Booking
	if err := result.Decode(&booking); err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *bookingMongoRepository) ListBookingsByUser(
	ctx context.Context,
	userID bson.ObjectID,
) ([]*model.Booking, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(bookingCollection).Find(ctx, bson.M{"user": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	for cursor.Next(ctx) {
		var booking model.Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, err
		}
		bookings = append(bookings, &booking)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *bookingMongoRepository) UpdateBookingStatus(
	ctx context.Context,
	id, userID bson.ObjectID,
	status model.BookingStatus,
) (*model.Booking, error) {
	result := r.db.Collection(bookingCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "user": userID},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var booking model.Booking
	if err := result.Decode(&booking); err != nil {
		return nil, err
	}

	return &booking, nil
}
