package converter

import (
	"github.com/ms-tech-geek/e-rickshaw-booking/internal/delivery/dto"
	"github.com/ms-tech-geek/e-rickshaw-booking/internal/domain/entity"
)

const bookingDateLayout = "2006-01-02"

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	return &dto.BookingResponse{
		ID:             booking.ID,
		Name:           booking.Name,
		MobileNumber:   booking.MobileNumber,
		PickupLocation: booking.PickupLocation,
		BookingDate:    booking.BookingDate.Format(bookingDateLayout),
		BookingTime:    booking.BookingTime,
		Status:         string(booking.Status),
		AssignedDriver: booking.AssignedDriver,
		DriverContact:  booking.DriverContact,
		CreatedAt:      booking.CreatedAt,
		UpdatedAt:      booking.UpdatedAt,
	}
}

// BookingsToResponses converts a slice of Booking entities to slice of BookingResponse DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp := BookingToResponse(&booking)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
