package payload

import (
	"time"

	"github.com/dogcafe6ix/dogcafe-api/internal/server/model"
)

type CreateBookingRequest struct {
	Plan            string `json:"plan"                      validate:"required"`
	Date            string `json:"date"                      validate:"required"`
	Time            string `json:"time"                      validate:"required"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

type BookingResponse struct {
	ID              string        `json:"id"`
	User            *UserResponse `json:"user,omitempty"`
	Plan            *PlanResponse `json:"plan,omitempty"`
	Date            string        `json:"date"`
	Time            string        `json:"time"`
	Status          string        `json:"status"`
	SpecialRequests string        `json:"specialRequests,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// NewBookingResponse maps a booking. The plan and owning user are expanded
// only when provided.
func NewBookingResponse(booking *model.Booking, plan *model.Plan, user *model.User) BookingResponse {
	response := BookingResponse{
		ID:              booking.ID.Hex(),
		Date:            booking.Date,
		Time:            booking.Time,
		Status:          string(booking.Status),
		SpecialRequests: booking.SpecialRequests,
		CreatedAt:       booking.CreatedAt,
	}

	if plan != nil {
		planResponse := NewPlanResponse(plan)
		response.Plan = &planResponse
	}

	if user != nil {
		userResponse := NewUserResponse(user)
		response.User = &userResponse
	}

	return response
}
