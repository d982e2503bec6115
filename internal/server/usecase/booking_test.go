package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dogcafe6ix/dogcafe-api/internal/server/model"
	"github.com/dogcafe6ix/dogcafe-api/internal/server/testutil"
	"github.com/dogcafe6ix/dogcafe-api/internal/server/usecase"
)

type bookingFixture struct {
	usecase  usecase.BookingUsecase
	userRepo *testutil.MemoryUserRepository
	planRepo *testutil.MemoryPlanRepository
	user     *model.User
	plan     *model.Plan
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	ctx := context.Background()

	userRepo := testutil.NewMemoryUserRepository()
	planRepo := testutil.NewMemoryPlanRepository()
	bookingRepo := testutil.NewMemoryBookingRepository()

	user, err := userRepo.CreateUser(ctx, &model.User{Email: "bella@example.com"})
	require.NoError(t, err)

	plan := &model.Plan{Name: "Plan A", Price: 50, Duration: 1, MaxDogs: 1}
	require.NoError(t, planRepo.CreatePlans(ctx, []*model.Plan{plan}))

	return &bookingFixture{
		usecase:  usecase.NewBookingUsecase(bookingRepo, planRepo, userRepo),
		userRepo: userRepo,
		planRepo: planRepo,
		user:     user,
		plan:     plan,
	}
}

func TestBookingUsecase_CreateBooking_ConfirmsImmediately(t *testing.T) {
	f := newBookingFixture(t)

	detail, err := f.usecase.CreateBooking(context.Background(), f.user.ID, usecase.CreateBookingParams{
		PlanID:          f.plan.ID,
		Date:            "2026-09-15",
		Time:            "14:00",
		SpecialRequests: "window seat please",
	})
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusConfirmed, detail.Booking.Status)
	assert.Equal(t, "2026-09-15", detail.Booking.Date)
	assert.Equal(t, "14:00", detail.Booking.Time)
	assert.Equal(t, "window seat please", detail.Booking.SpecialRequests)
	require.NotNil(t, detail.Plan)
	assert.Equal(t, "Plan A", detail.Plan.Name)
	require.NotNil(t, detail.User)
	assert.Equal(t, f.user.ID, detail.User.ID)
}

func TestBookingUsecase_CreateBooking_UnknownPlan(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.usecase.CreateBooking(context.Background(), f.user.ID, usecase.CreateBookingParams{
		PlanID: bson.NewObjectID(),
		Date:   "2026-09-15",
		Time:   "14:00",
	})
	assert.ErrorIs(t, err, usecase.ErrPlanNotFound)
}

func TestBookingUsecase_ListUserBookings_NewestFirst(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	first, err := f.usecase.CreateBooking(ctx, f.user.ID, usecase.CreateBookingParams{
		PlanID: f.plan.ID, Date: "2026-09-15", Time: "10:00",
	})
	require.NoError(t, err)
	second, err := f.usecase.CreateBooking(ctx, f.user.ID, usecase.CreateBookingParams{
		PlanID: f.plan.ID, Date: "2026-09-16", Time: "11:00",
	})
	require.NoError(t, err)

	details, err := f.usecase.ListUserBookings(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, details, 2)

	assert.Equal(t, second.Booking.ID, details[0].Booking.ID)
	assert.Equal(t, first.Booking.ID, details[1].Booking.ID)
	require.NotNil(t, details[0].Plan)
	assert.Equal(t, "Plan A", details[0].Plan.Name)
}

func TestBookingUsecase_ListUserBookings_OnlyOwn(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	other, err := f.userRepo.CreateUser(ctx, &model.User{Email: "max@example.com"})
	require.NoError(t, err)

	_, err = f.usecase.CreateBooking(ctx, f.user.ID, usecase.CreateBookingParams{
		PlanID: f.plan.ID, Date: "2026-09-15", Time: "10:00",
	})
	require.NoError(t, err)

	details, err := f.usecase.ListUserBookings(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, details)
}

func TestBookingUsecase_CancelBooking(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created, err := f.usecase.CreateBooking(ctx, f.user.ID, usecase.CreateBookingParams{
		PlanID: f.plan.ID, Date: "2026-09-15", Time: "10:00",
	})
	require.NoError(t, err)

	cancelled, err := f.usecase.CancelBooking(ctx, f.user.ID, created.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, cancelled.Booking.Status)

	// Cancelling again is a no-op, not an error.
	again, err := f.usecase.CancelBooking(ctx, f.user.ID, created.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, again.Booking.Status)
}

func TestBookingUsecase_CancelBooking_NotOwned(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	other, err := f.userRepo.CreateUser(ctx, &model.User{Email: "max@example.com"})
	require.NoError(t, err)

	created, err := f.usecase.CreateBooking(ctx, f.user.ID, usecase.CreateBookingParams{
		PlanID: f.plan.ID, Date: "2026-09-15", Time: "10:00",
	})
	require.NoError(t, err)

	_, err = f.usecase.CancelBooking(ctx, other.ID, created.Booking.ID)
	assert.ErrorIs(t, err, usecase.ErrBookingNotFound)
}

func TestBookingUsecase_CancelBooking_Unknown(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.usecase.CancelBooking(context.Background(), f.user.ID, bson.NewObjectID())
	assert.ErrorIs(t, err, usecase.ErrBookingNotFound)
}
