package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dogcafe6ix/dogcafe-api/internal/server/usecase"
	"github.com/dogcafe6ix/dogcafe-api/shared/payload"
)

// BookingHandler serves the booking endpoints. All of them require an
// authenticated user.
type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	logger         *zerolog.Logger
}

// NewBookingHandler creates a new BookingHandler instance.
func NewBookingHandler(bookingUsecase usecase.BookingUsecase, logger *zerolog.Logger) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		logger:         logger,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req payload.CreateBookingRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	planID, err := bson.ObjectIDFromHex(req.Plan)
	if err != nil {
		respondError(w, http.StatusBadRequest, "plan must be a valid plan id")
		return
	}

	detail, err := h.bookingUsecase.CreateBooking(r.Context(), user.ID, usecase.CreateBookingParams{
		PlanID:          planID,
		Date:            req.Date,
		Time:            req.Time,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrPlanNotFound) {
			respondError(w, http.StatusNotFound, "plan not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to create booking")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	respondJSON(w, http.StatusCreated, payload.NewBookingResponse(detail.Booking, detail.Plan, detail.User))
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	details, err := h.bookingUsecase.ListUserBookings(r.Context(), user.ID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list bookings")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	responses := make([]payload.BookingResponse, 0, len(details))
	for _, detail := range details {
		responses = append(responses, payload.NewBookingResponse(detail.Booking, detail.Plan, nil))
	}

	respondJSON(w, http.StatusOK, responses)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	id, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "booking not found")
		return
	}

	detail, err := h.bookingUsecase.CancelBooking(r.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, usecase.ErrBookingNotFound) {
			respondError(w, http.StatusNotFound, "booking not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to cancel booking")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	respondJSON(w, http.StatusOK, payload.NewBookingResponse(detail.Booking, detail.Plan, nil))
}
