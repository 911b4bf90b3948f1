package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

// statusTransitions defines the allowed status transitions.
// Operators may cancel a confirmed booking, but a cancelled booking
// is never reopened.
var statusTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCancelled},
	BookingStatusCancelled: {},
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := statusTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the
// target is allowed. Re-applying the current status is always allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	if s == target {
		return true
	}
	allowed, exists := statusTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible.
func (s BookingStatus) IsTerminal() bool {
	allowed, exists := statusTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// DriverAssignment pairs a driver's name with their contact number.
// A booking either has no driver or a complete assignment; the two
// fields never appear independently.
type DriverAssignment struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// Booking represents a customer's e-rickshaw pickup request
type Booking struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name           string        `gorm:"type:varchar(50);not null" json:"name"`
	MobileNumber   string        `gorm:"type:varchar(10);not null;index" json:"mobile_number"`
	PickupLocation string        `gorm:"type:text;not null" json:"pickup_location"`
	BookingDate    time.Time     `gorm:"type:date;not null;index" json:"booking_date"`
	BookingTime    string        `gorm:"type:varchar(8);not null" json:"booking_time"`
	Status         BookingStatus `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	AssignedDriver *string       `gorm:"type:varchar(100)" json:"assigned_driver,omitempty"`
	DriverContact  *string       `gorm:"type:varchar(10)" json:"driver_contact,omitempty"`
	CreatedAt      time.Time     `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

// IsPending checks if the booking is awaiting dispatch
func (b *Booking) IsPending() bool {
	return b.Status == BookingStatusPending
}

// IsConfirmed checks if the booking has been confirmed
func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingStatusConfirmed
}

// IsCancelled checks if the booking was cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// Driver returns the driver assignment, or nil when no driver has been
// assigned. Both columns must be present to count as an assignment.
func (b *Booking) Driver() *DriverAssignment {
	if b.AssignedDriver == nil || b.DriverContact == nil {
		return nil
	}
	return &DriverAssignment{Name: *b.AssignedDriver, Contact: *b.DriverContact}
}

// AssignDriver sets both driver columns from a complete assignment.
func (b *Booking) AssignDriver(d DriverAssignment) {
	b.AssignedDriver = &d.Name
	b.DriverContact = &d.Contact
}
