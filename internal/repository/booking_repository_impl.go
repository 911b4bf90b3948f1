package repository

import (
	"context"
	"errors"

	"github.com/ms-tech-geek/e-rickshaw-booking/internal/domain/entity"
	domainRepo "github.com/ms-tech-geek/e-rickshaw-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) domainRepo.BookingRepository {
	return &bookingRepository{db: db}
}

// ListPage runs the count and the windowed select as two statements.
// The count is exact, not an estimate, because the dashboard derives
// its page total from it.
func (r *bookingRepository) ListPage(ctx context.Context, offset, limit int) ([]entity.Booking, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&entity.Booking{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []entity.Booking
	err := db.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) UpdateByID(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Booking{}).
		Where("id = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}
