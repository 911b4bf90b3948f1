package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ms-tech-geek/e-rickshaw-booking/internal/delivery/dto"
	"github.com/ms-tech-geek/e-rickshaw-booking/internal/domain/entity"
	"github.com/ms-tech-geek/e-rickshaw-booking/internal/usecase"
	"github.com/ms-tech-geek/e-rickshaw-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookingUsecase scripts the booking store for handler tests.
type fakeBookingUsecase struct {
	fetchErr  error
	createErr error
	updateErr error

	lastFetchedPage int
	snapshot        dto.BookingPageSnapshot
	created         *dto.BookingResponse
	updatedID       uuid.UUID
	updateReq       *dto.UpdateBookingRequest
}

func (f *fakeBookingUsecase) FetchBookings(ctx context.Context, page int) error {
	if f.fetchErr != nil {
		return f.fetchErr
	}
	f.lastFetchedPage = page
	f.snapshot.CurrentPage = page
	return nil
}

func (f *fakeBookingUsecase) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = &dto.BookingResponse{
		ID:             uuid.New(),
		Name:           req.Name,
		MobileNumber:   req.MobileNumber,
		PickupLocation: req.PickupLocation,
		BookingDate:    req.BookingDate,
		BookingTime:    req.BookingTime,
		Status:         string(entity.BookingStatusPending),
	}
	return f.created, nil
}

func (f *fakeBookingUsecase) UpdateBooking(ctx context.Context, id uuid.UUID, req *dto.UpdateBookingRequest) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedID = id
	f.updateReq = req
	return nil
}

func (f *fakeBookingUsecase) Snapshot() *dto.BookingPageSnapshot {
	copied := f.snapshot
	return &copied
}

func (f *fakeBookingUsecase) FilteredSnapshot(filter entity.BookingFilter) *dto.BookingPageSnapshot {
	filtered := f.snapshot
	filtered.Bookings = nil
	for _, b := range f.snapshot.Bookings {
		row := entity.Booking{Name: b.Name, MobileNumber: b.MobileNumber}
		if filter.Matches(&row) {
			filtered.Bookings = append(filtered.Bookings, b)
		}
	}
	return &filtered
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreateBookingHandler(t *testing.T) {
	fake := &fakeBookingUsecase{}
	h := NewBookingHandler(fake, validator.NewValidator())

	payload := `{
		"name": "Ravi Kumar",
		"mobile_number": "9876543210",
		"pickup_location": "Near City Mall, Gate 2",
		"booking_date": "2030-01-15",
		"booking_time": "09:30"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()
	h.CreateBooking(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Pending", data["status"])
}

func TestCreateBookingHandlerValidation(t *testing.T) {
	fake := &fakeBookingUsecase{}
	h := NewBookingHandler(fake, validator.NewValidator())

	payload := `{
		"name": "Ravi Kumar",
		"mobile_number": "12345",
		"pickup_location": "Near City Mall",
		"booking_date": "2030-01-15",
		"booking_time": "09:30"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()
	h.CreateBooking(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Nil(t, fake.created)
}

func TestCreateBookingHandlerPastDate(t *testing.T) {
	fake := &fakeBookingUsecase{createErr: usecase.ErrBookingDateNotFuture}
	h := NewBookingHandler(fake, validator.NewValidator())

	payload := `{
		"name": "Ravi Kumar",
		"mobile_number": "9876543210",
		"pickup_location": "Near City Mall",
		"booking_date": "2020-01-01",
		"booking_time": "09:30"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()
	h.CreateBooking(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetBookingsHandler(t *testing.T) {
	fake := &fakeBookingUsecase{
		snapshot: dto.BookingPageSnapshot{
			Bookings:    []dto.BookingResponse{{Name: "Ravi Kumar", MobileNumber: "9876543210"}},
			CurrentPage: 2,
			TotalPages:  3,
			TotalCount:  25,
		},
	}
	h := NewBookingHandler(fake, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings?page=2", nil)
	rec := httptest.NewRecorder()
	h.GetBookings(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, fake.lastFetchedPage)

	body := decodeResponse(t, rec)
	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, float64(2), meta["page"])
	assert.Equal(t, float64(10), meta["limit"])
	assert.Equal(t, float64(25), meta["total"])
	assert.Equal(t, float64(3), meta["total_pages"])
}

func TestGetBookingsHandlerRejectsBadPage(t *testing.T) {
	fake := &fakeBookingUsecase{}
	h := NewBookingHandler(fake, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings?page=zero", nil)
	rec := httptest.NewRecorder()
	h.GetBookings(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateBookingHandler(t *testing.T) {
	fake := &fakeBookingUsecase{}
	h := NewDispatchHandler(fake, validator.NewValidator())

	id := uuid.New()
	payload := `{"driver": {"name": "Suresh", "contact": "9000000001"}, "status": "Confirmed"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/bookings/"+id.String(), bytes.NewBufferString(payload))
	req = mux.SetURLVars(req, map[string]string{"id": id.String()})
	rec := httptest.NewRecorder()
	h.UpdateBooking(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, fake.updatedID)
	require.NotNil(t, fake.updateReq)
	require.NotNil(t, fake.updateReq.Driver)
	assert.Equal(t, "Suresh", fake.updateReq.Driver.Name)
	assert.Equal(t, "Confirmed", fake.updateReq.Status)
}

func TestUpdateBookingHandlerErrors(t *testing.T) {
	tests := []struct {
		name       string
		usecaseErr error
		wantStatus int
	}{
		{"not found", usecase.ErrBookingNotFound, http.StatusNotFound},
		{"illegal transition", usecase.ErrInvalidStatusTransition, http.StatusConflict},
		{"nothing to update", usecase.ErrNoFieldsToUpdate, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeBookingUsecase{updateErr: tt.usecaseErr}
			h := NewDispatchHandler(fake, validator.NewValidator())

			id := uuid.New()
			req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/bookings/"+id.String(),
				bytes.NewBufferString(`{"status": "Confirmed"}`))
			req = mux.SetURLVars(req, map[string]string{"id": id.String()})
			rec := httptest.NewRecorder()
			h.UpdateBooking(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestUpdateBookingHandlerRejectsBadID(t *testing.T) {
	fake := &fakeBookingUsecase{}
	h := NewDispatchHandler(fake, validator.NewValidator())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/bookings/not-a-uuid",
		bytes.NewBufferString(`{"status": "Confirmed"}`))
	req = mux.SetURLVars(req, map[string]string{"id": "not-a-uuid"})
	rec := httptest.NewRecorder()
	h.UpdateBooking(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchBookingsHandler(t *testing.T) {
	fake := &fakeBookingUsecase{
		snapshot: dto.BookingPageSnapshot{
			Bookings: []dto.BookingResponse{
				{Name: "Ravi Kumar", MobileNumber: "9876543210"},
				{Name: "Asha", MobileNumber: "9123456780"},
			},
			CurrentPage: 1,
			TotalPages:  1,
			TotalCount:  2,
		},
	}
	h := NewDispatchHandler(fake, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings?search=ravi", nil)
	rec := httptest.NewRecorder()
	h.SearchBookings(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	row := data[0].(map[string]interface{})
	assert.Equal(t, "Ravi Kumar", row["name"])
}
