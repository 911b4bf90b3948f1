package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ms-tech-geek/e-rickshaw-booking/internal/delivery/dto"
	"github.com/ms-tech-geek/e-rickshaw-booking/internal/domain/entity"
	"github.com/ms-tech-geek/e-rickshaw-booking/internal/usecase"
	"github.com/ms-tech-geek/e-rickshaw-booking/pkg/response"
	"github.com/ms-tech-geek/e-rickshaw-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// DispatchHandler serves the operator dashboard: searching the current
// page of bookings and assigning drivers.
type DispatchHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewDispatchHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *DispatchHandler {
	return &DispatchHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

// SearchBookings refreshes the page the operator is viewing, then narrows
// it with the search term and date range. The filter only derives from
// the fetched page; it never widens the query.
func (h *DispatchHandler) SearchBookings(w http.ResponseWriter, r *http.Request) {
	page := h.bookingUsecase.Snapshot().CurrentPage
	if err := h.bookingUsecase.FetchBookings(r.Context(), page); err != nil {
		response.InternalServerError(w, "Failed to get bookings")
		return
	}

	query := r.URL.Query()
	filter := entity.BookingFilter{
		Search:  query.Get("search"),
		StartAt: query.Get("start_date"),
		EndAt:   query.Get("end_date"),
	}

	snapshot := h.bookingUsecase.FilteredSnapshot(filter)
	response.SuccessWithMeta(w, http.StatusOK, "Bookings retrieved successfully", snapshot.Bookings, &response.Meta{
		Page:       snapshot.CurrentPage,
		Limit:      10,
		Total:      snapshot.TotalCount,
		TotalPages: snapshot.TotalPages,
	})
}

// UpdateBooking applies a dispatch update: driver assignment and/or a
// status change.
func (h *DispatchHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	var req dto.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	err = h.bookingUsecase.UpdateBooking(r.Context(), bookingID, &req)
	if err != nil {
		switch err {
		case usecase.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case usecase.ErrInvalidStatus:
			response.Error(w, http.StatusBadRequest, "Invalid booking status", nil)
		case usecase.ErrInvalidStatusTransition:
			response.Error(w, http.StatusConflict, "Status transition not allowed", nil)
		case usecase.ErrNoFieldsToUpdate:
			response.Error(w, http.StatusBadRequest, "No fields to update", nil)
		default:
			response.InternalServerError(w, "Failed to update booking")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking updated successfully", nil)
}
