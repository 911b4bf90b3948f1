package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ms-tech-geek/e-rickshaw-booking/internal/delivery/dto"
	"github.com/ms-tech-geek/e-rickshaw-booking/internal/usecase"
	"github.com/ms-tech-geek/e-rickshaw-booking/pkg/response"
	"github.com/ms-tech-geek/e-rickshaw-booking/pkg/validator"
)

// BookingHandler serves the customer-facing booking surface: submitting a
// pickup request and browsing the paginated booking list.
type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.CreateBooking(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidBookingDate:
			response.Error(w, http.StatusBadRequest, "Booking date must be in YYYY-MM-DD format", nil)
		case usecase.ErrBookingDateNotFuture:
			response.Error(w, http.StatusBadRequest, "Booking date must be a future date", nil)
		default:
			response.InternalServerError(w, "Failed to create booking")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Booking created successfully", booking)
}

func (h *BookingHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.Error(w, http.StatusBadRequest, "Invalid page number", nil)
			return
		}
		page = parsed
	}

	if err := h.bookingUsecase.FetchBookings(r.Context(), page); err != nil {
		response.InternalServerError(w, "Failed to get bookings")
		return
	}

	snapshot := h.bookingUsecase.Snapshot()
	response.SuccessWithMeta(w, http.StatusOK, "Bookings retrieved successfully", snapshot.Bookings, &response.Meta{
		Page:       snapshot.CurrentPage,
		Limit:      10,
		Total:      snapshot.TotalCount,
		TotalPages: snapshot.TotalPages,
	})
}
