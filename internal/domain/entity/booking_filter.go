package entity

import "strings"

const dateLayout = "2006-01-02"

// BookingFilter is a domain-level filter for narrowing a fetched page of
// bookings on the dispatch dashboard. It only filters rows already in
// memory; it never issues a new query.
type BookingFilter struct {
	Search  string // matched against name (case-insensitive) or mobile number
	StartAt string // Format: YYYY-MM-DD, inclusive
	EndAt   string // Format: YYYY-MM-DD, inclusive
}

// Matches reports whether a booking satisfies both the search term and
// the date range. An empty term or unset bound imposes no constraint.
func (f BookingFilter) Matches(b *Booking) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		byName := strings.Contains(strings.ToLower(b.Name), term)
		byMobile := strings.Contains(b.MobileNumber, f.Search)
		if !byName && !byMobile {
			return false
		}
	}

	// YYYY-MM-DD compares correctly as a string.
	date := b.BookingDate.Format(dateLayout)
	if f.StartAt != "" && date < f.StartAt {
		return false
	}
	if f.EndAt != "" && date > f.EndAt {
		return false
	}
	return true
}

// FilterBookings returns the subset of bookings matching the filter,
// preserving the input order.
func FilterBookings(bookings []Booking, filter BookingFilter) []Booking {
	filtered := make([]Booking, 0, len(bookings))
	for i := range bookings {
		if filter.Matches(&bookings[i]) {
			filtered = append(filtered, bookings[i])
		}
	}
	return filtered
}
