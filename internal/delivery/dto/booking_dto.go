package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateBookingRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=50"`
	MobileNumber   string `json:"mobile_number" validate:"required,len=10,numeric"`
	PickupLocation string `json:"pickup_location" validate:"required"`
	BookingDate    string `json:"booking_date" validate:"required,datetime=2006-01-02"`
	BookingTime    string `json:"booking_time" validate:"required"`
}

// UpdateBookingRequest carries the dispatch form: an optional driver
// assignment and an optional status change. Driver name and contact are
// a single value; one cannot be sent without the other.
type UpdateBookingRequest struct {
	Driver *DriverAssignmentRequest `json:"driver,omitempty" validate:"omitempty"`
	Status string                   `json:"status,omitempty" validate:"omitempty,oneof=Pending Confirmed Cancelled"`
}

type DriverAssignmentRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Contact string `json:"contact" validate:"required,len=10,numeric"`
}

// Response DTOs

type BookingResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	MobileNumber   string    `json:"mobile_number"`
	PickupLocation string    `json:"pickup_location"`
	BookingDate    string    `json:"booking_date"`
	BookingTime    string    `json:"booking_time"`
	Status         string    `json:"status"`
	AssignedDriver *string   `json:"assigned_driver,omitempty"`
	DriverContact  *string   `json:"driver_contact,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BookingPageSnapshot is a read-only copy of the booking store's cache:
// the current page plus its request state.
type BookingPageSnapshot struct {
	Bookings    []BookingResponse `json:"bookings"`
	Loading     bool              `json:"loading"`
	Error       string            `json:"error,omitempty"`
	CurrentPage int               `json:"current_page"`
	TotalPages  int               `json:"total_pages"`
	TotalCount  int64             `json:"total_count"`
}
