package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ms-tech-geek/e-rickshaw-booking/internal/converter"
	"github.com/ms-tech-geek/e-rickshaw-booking/internal/delivery/dto"
	"github.com/ms-tech-geek/e-rickshaw-booking/internal/domain/entity"
	"github.com/ms-tech-geek/e-rickshaw-booking/internal/domain/repository"
	"github.com/ms-tech-geek/e-rickshaw-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// pageSize is the fixed window size of the dashboard's booking list.
const pageSize = 10

const bookingDateLayout = "2006-01-02"

var (
	ErrBookingNotFound         = errors.New("booking not found")
	ErrInvalidBookingDate      = errors.New("booking date must be in YYYY-MM-DD format")
	ErrBookingDateNotFuture    = errors.New("booking date must be a future date")
	ErrInvalidStatus           = errors.New("invalid booking status")
	ErrInvalidStatusTransition = errors.New("status transition not allowed")
	ErrNoFieldsToUpdate        = errors.New("no fields to update")
)

// BookingUsecase is the booking store: the single owner of the cached
// page of bookings the dashboard renders. All writes to the cache go
// through the three operations; readers only get copies via Snapshot.
type BookingUsecase interface {
	FetchBookings(ctx context.Context, page int) error
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, req *dto.UpdateBookingRequest) error
	Snapshot() *dto.BookingPageSnapshot
	FilteredSnapshot(filter entity.BookingFilter) *dto.BookingPageSnapshot
}

type bookingUsecase struct {
	log          *logrus.Logger
	bookingRepo  repository.BookingRepository
	auditService service.AuditService
	pageCache    *service.PageCacheService

	// createMu and updateMu serialize each mutating operation kind.
	// Fetches are not serialized; instead every fetch is tagged with a
	// sequence number and a superseded result is discarded, so a slow
	// fetch can never overwrite the cache with stale rows.
	createMu sync.Mutex
	updateMu sync.Mutex
	fetchSeq atomic.Int64

	mu          sync.Mutex
	bookings    []entity.Booking
	currentPage int
	totalPages  int
	totalCount  int64
	loading     bool
	lastError   string
}

func NewBookingUsecase(
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	auditService service.AuditService,
	pageCache *service.PageCacheService,
) BookingUsecase {
	return &bookingUsecase{
		log:          log,
		bookingRepo:  bookingRepo,
		auditService: auditService,
		pageCache:    pageCache,
		currentPage:  1,
		totalPages:   1,
	}
}

// FetchBookings loads one page of bookings, newest first, into the cache.
func (u *bookingUsecase) FetchBookings(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	return u.fetchPage(ctx, page)
}

func (u *bookingUsecase) fetchPage(ctx context.Context, page int) error {
	seq := u.fetchSeq.Add(1)
	u.beginOp()

	rows, total, err := u.loadPage(ctx, page)

	u.mu.Lock()
	defer u.mu.Unlock()

	// A newer fetch was issued while this one was in flight; its result
	// owns the cache now, whatever this one returned.
	if seq != u.fetchSeq.Load() {
		return nil
	}

	if err != nil {
		u.log.Warnf("Failed to fetch bookings page %d: %+v", page, err)
		u.lastError = err.Error()
		u.loading = false
		return err
	}

	u.bookings = rows
	u.currentPage = page
	u.totalCount = total
	u.totalPages = totalPagesFor(total)
	u.loading = false
	return nil
}

// loadPage reads a page through the Redis cache when one is configured,
// falling back to the record store on a miss.
func (u *bookingUsecase) loadPage(ctx context.Context, page int) ([]entity.Booking, int64, error) {
	if u.pageCache != nil {
		if rows, total, ok := u.pageCache.Get(ctx, page); ok {
			return rows, total, nil
		}
	}

	rows, total, err := u.bookingRepo.ListPage(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	if u.pageCache != nil {
		u.pageCache.Set(ctx, page, rows, total)
	}
	return rows, total, nil
}

// CreateBooking inserts a new pickup request. The stored status is always
// Pending, whatever the caller submitted. On success the cache jumps to
// page 1 so the new booking is immediately visible.
func (u *bookingUsecase) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	// Date validation happens before the operation touches the store.
	bookingDate, err := time.Parse(bookingDateLayout, req.BookingDate)
	if err != nil {
		return nil, ErrInvalidBookingDate
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if !bookingDate.After(today) {
		return nil, ErrBookingDateNotFuture
	}

	u.createMu.Lock()
	defer u.createMu.Unlock()

	u.beginOp()

	booking := &entity.Booking{
		Name:           req.Name,
		MobileNumber:   req.MobileNumber,
		PickupLocation: req.PickupLocation,
		BookingDate:    bookingDate,
		BookingTime:    req.BookingTime,
		Status:         entity.BookingStatusPending,
	}

	if err := u.bookingRepo.Create(ctx, booking); err != nil {
		u.log.Warnf("Failed to create booking for %s: %+v", req.MobileNumber, err)
		u.failOp(err)
		return nil, err
	}

	if u.auditService != nil {
		u.auditService.LogCreate(ctx, entity.AuditActionBookingCreate, "booking", booking.ID.String(), booking)
	}
	if u.pageCache != nil {
		u.pageCache.Invalidate(ctx)
	}

	if err := u.fetchPage(ctx, 1); err != nil {
		u.log.Warnf("Booking %s created but page refresh failed: %+v", booking.ID, err)
	}

	u.log.Infof("Booking created: id=%s, date=%s %s", booking.ID, req.BookingDate, req.BookingTime)
	return converter.BookingToResponse(booking), nil
}

// UpdateBooking applies a dispatch update (driver assignment and/or
// status) to one booking, then refetches the currently displayed page so
// the cache reflects authoritative server state. The local copy is never
// patched optimistically.
func (u *bookingUsecase) UpdateBooking(ctx context.Context, id uuid.UUID, req *dto.UpdateBookingRequest) error {
	fields := map[string]interface{}{}
	if req.Driver != nil {
		fields["assigned_driver"] = req.Driver.Name
		fields["driver_contact"] = req.Driver.Contact
	}
	target := entity.BookingStatus(req.Status)
	if req.Status != "" {
		if !target.IsValid() {
			return ErrInvalidStatus
		}
		fields["status"] = string(target)
	}
	if len(fields) == 0 {
		return ErrNoFieldsToUpdate
	}

	u.updateMu.Lock()
	defer u.updateMu.Unlock()

	u.beginOp()

	existing, err := u.bookingRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", id, err)
		u.failOp(err)
		return err
	}
	if existing == nil {
		u.endOp()
		return ErrBookingNotFound
	}
	if req.Status != "" && !existing.Status.CanTransitionTo(target) {
		u.log.Warnf("Rejected status transition %s -> %s for booking %s", existing.Status, target, id)
		u.endOp()
		return ErrInvalidStatusTransition
	}

	rows, err := u.bookingRepo.UpdateByID(ctx, id, fields)
	if err != nil {
		u.log.Warnf("Failed to update booking %s: %+v", id, err)
		u.failOp(err)
		return err
	}
	if rows == 0 {
		u.endOp()
		return ErrBookingNotFound
	}

	if u.auditService != nil {
		u.auditService.LogUpdate(ctx, entity.AuditActionBookingDispatch, "booking", id.String(), existing, fields)
	}
	if u.pageCache != nil {
		u.pageCache.Invalidate(ctx)
	}

	u.mu.Lock()
	page := u.currentPage
	u.mu.Unlock()
	if err := u.fetchPage(ctx, page); err != nil {
		u.log.Warnf("Booking %s updated but page refresh failed: %+v", id, err)
	}

	u.log.Infof("Booking updated: id=%s, fields=%d", id, len(fields))
	return nil
}

// Snapshot returns a read-only copy of the cached page and its state.
func (u *bookingUsecase) Snapshot() *dto.BookingPageSnapshot {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.snapshotLocked(u.bookings)
}

// FilteredSnapshot narrows the cached page through the dashboard filter.
// It derives from rows already fetched and never issues a new query.
func (u *bookingUsecase) FilteredSnapshot(filter entity.BookingFilter) *dto.BookingPageSnapshot {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.snapshotLocked(entity.FilterBookings(u.bookings, filter))
}

func (u *bookingUsecase) snapshotLocked(rows []entity.Booking) *dto.BookingPageSnapshot {
	return &dto.BookingPageSnapshot{
		Bookings:    converter.BookingsToResponses(rows),
		Loading:     u.loading,
		Error:       u.lastError,
		CurrentPage: u.currentPage,
		TotalPages:  u.totalPages,
		TotalCount:  u.totalCount,
	}
}

// beginOp marks an operation as in flight and clears the previous error.
func (u *bookingUsecase) beginOp() {
	u.mu.Lock()
	u.loading = true
	u.lastError = ""
	u.mu.Unlock()
}

// endOp clears the loading flag without recording an error. Used when an
// operation is rejected before reaching the record store.
func (u *bookingUsecase) endOp() {
	u.mu.Lock()
	u.loading = false
	u.mu.Unlock()
}

// failOp records a remote failure. The previously cached rows stay
// untouched so the dashboard does not blank out on a transient error.
func (u *bookingUsecase) failOp(err error) {
	u.mu.Lock()
	u.lastError = err.Error()
	u.loading = false
	u.mu.Unlock()
}

func totalPagesFor(total int64) int {
	pages := int((total + pageSize - 1) / pageSize)
	if pages < 1 {
		pages = 1
	}
	return pages
}
