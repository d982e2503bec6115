package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dogcafe6ix/dogcafe-api/internal/server/model"
	"github.com/dogcafe6ix/dogcafe-api/internal/server/repository"
)

// BookingUsecase defines the business logic for visit bookings.
type BookingUsecase interface {
	// CreateBooking persists a confirmed booking owned by the user and
	// returns it with its plan and owner loaded.
	CreateBooking(ctx context.Context, userID bson.ObjectID, params CreateBookingParams) (*BookingDetail, error)

	// ListUserBookings returns the user's bookings newest first, each with
	// its plan loaded.
	ListUserBookings(ctx context.Context, userID bson.ObjectID) ([]*BookingDetail, error)

	// CancelBooking sets the booking's status to cancelled. Only the owner
	// can cancel; cancelling twice is idempotent.
	CancelBooking(ctx context.Context, userID, bookingID bson.ObjectID) (*BookingDetail, error)
}

// CreateBookingParams defines the parameters for creating a booking.
type CreateBookingParams struct {
	PlanID          bson.ObjectID
	Date            string
	Time            string
	SpecialRequests string
}

// BookingDetail is a booking with its referenced documents loaded. User is
// nil when the caller did not ask for the owner to be expanded.
type BookingDetail struct {
	Booking *model.Booking
	Plan    *model.Plan
	User    *model.User
}

var ErrBookingNotFound = errors.New("booking not found")

type bookingUsecase struct {
	bookingRepo repository.BookingRepository
	planRepo    repository.PlanRepository
	userRepo    repository.UserRepository
}

// NewBookingUsecase creates a new instance of BookingUsecase.
func NewBookingUsecase(
	bookingRepo repository.BookingRepository,
	planRepo repository.PlanRepository,
	userRepo repository.UserRepository,
) BookingUsecase {
	return &bookingUsecase{
		bookingRepo: bookingRepo,
		planRepo:    planRepo,
		userRepo:    userRepo,
	}
}

func (u *bookingUsecase) CreateBooking(
	ctx context.Context,
	userID bson.ObjectID,
	params CreateBookingParams,
) (*BookingDetail, error) {
	plan, err := u.planRepo.GetPlan(ctx, params.PlanID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Bookings are confirmed immediately; there is no review step.
	booking, err := u.bookingRepo.CreateBooking(ctx, &model.Booking{
		UserID:          userID,
		PlanID:          plan.ID,
		Date:            params.Date,
		Time:            params.Time,
		Status:          model.BookingStatusConfirmed,
		SpecialRequests: params.SpecialRequests,
	})
	if err != nil {
		return nil, err
	}

	return &BookingDetail{Booking: booking, Plan: plan, User: user}, nil
}

func (u *bookingUsecase) ListUserBookings(
	ctx context.Context,
	userID bson.ObjectID,
) ([]*BookingDetail, error) {
	bookings, err := u.bookingRepo.ListBookingsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := make([]*BookingDetail, 0, len(bookings))
	for _, booking := range bookings {
		plan, err := u.planRepo.GetPlan(ctx, booking.PlanID)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		details = append(details, &BookingDetail{Booking: booking, Plan: plan})
	}

	return details, nil
}

func (u *bookingUsecase) CancelBooking(
	ctx context.Context,
	userID, bookingID bson.ObjectID,
) (*BookingDetail, error) {
	booking, err := u.bookingRepo.UpdateBookingStatus(ctx, bookingID, userID, model.BookingStatusCancelled)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	plan, err := u.planRepo.GetPlan(ctx, booking.PlanID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	return &BookingDetail{Booking: booking, Plan: plan}, nil
}
