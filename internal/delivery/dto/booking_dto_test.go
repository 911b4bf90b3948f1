package dto

import (
	"testing"

	"github.com/ms-tech-geek/e-rickshaw-booking/pkg/validator"

	"github.com/stretchr/testify/assert"
)

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		Name:           "Ravi Kumar",
		MobileNumber:   "9876543210",
		PickupLocation: "Near City Mall, Gate 2",
		BookingDate:    "2030-01-15",
		BookingTime:    "09:30",
	}
}

func TestCreateBookingRequestValidation(t *testing.T) {
	v := validator.NewValidator()

	tests := []struct {
		name   string
		mutate func(*CreateBookingRequest)
		valid  bool
	}{
		{"valid request", func(r *CreateBookingRequest) {}, true},
		{"mobile too short", func(r *CreateBookingRequest) { r.MobileNumber = "12345" }, false},
		{"mobile too long", func(r *CreateBookingRequest) { r.MobileNumber = "12345678901" }, false},
		{"mobile not numeric", func(r *CreateBookingRequest) { r.MobileNumber = "98765abcde" }, false},
		{"name too short", func(r *CreateBookingRequest) { r.Name = "A" }, false},
		{"missing pickup location", func(r *CreateBookingRequest) { r.PickupLocation = "" }, false},
		{"date in wrong format", func(r *CreateBookingRequest) { r.BookingDate = "15/01/2030" }, false},
		{"missing booking time", func(r *CreateBookingRequest) { r.BookingTime = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := v.Validate(req)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestUpdateBookingRequestValidation(t *testing.T) {
	v := validator.NewValidator()

	// Both fields optional; an empty request passes structural validation
	// and is rejected further down as a no-op.
	assert.NoError(t, v.Validate(UpdateBookingRequest{}))

	assert.NoError(t, v.Validate(UpdateBookingRequest{Status: "Confirmed"}))
	assert.Error(t, v.Validate(UpdateBookingRequest{Status: "Completed"}))

	assert.NoError(t, v.Validate(UpdateBookingRequest{
		Driver: &DriverAssignmentRequest{Name: "Suresh", Contact: "9000000001"},
	}))
	assert.Error(t, v.Validate(UpdateBookingRequest{
		Driver: &DriverAssignmentRequest{Name: "Suresh", Contact: "call me"},
	}))
	assert.Error(t, v.Validate(UpdateBookingRequest{
		Driver: &DriverAssignmentRequest{Contact: "9000000001"},
	}))
}

func TestFormatValidationErrors(t *testing.T) {
	v := validator.NewValidator()

	req := validRequest()
	req.MobileNumber = "12345"
	err := v.Validate(req)
	assert.Error(t, err)

	formatted := v.FormatValidationErrors(err)
	assert.Contains(t, formatted, "MobileNumber")
}
