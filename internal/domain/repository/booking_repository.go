package repository

import (
	"context"

	"github.com/ms-tech-geek/e-rickshaw-booking/internal/domain/entity"

	"github.com/google/uuid"
)

// BookingRepository is the contract required of the durable record store:
// a filtered range query with exact total count, insert-one, and partial
// update by identifier. No retries or batching beyond per-call atomicity.
type BookingRepository interface {
	// ListPage returns one window of bookings ordered by created_at
	// descending, plus the exact total row count.
	ListPage(ctx context.Context, offset, limit int) ([]entity.Booking, int64, error)

	// Create inserts a new booking record.
	Create(ctx context.Context, booking *entity.Booking) error

	// FindByID returns the booking with the given ID, or nil when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)

	// UpdateByID applies a partial column update to the booking with the
	// given ID and returns the number of affected rows.
	UpdateByID(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error)
}
