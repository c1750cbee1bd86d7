// model/booking.go
package model

import "time"

type BookingStatus string

const (
	BookingWaiting  BookingStatus = "WAITING"
	BookingApproved BookingStatus = "APPROVED"
	BookingRejected BookingStatus = "REJECTED"
	BookingCanceled BookingStatus = "CANCELED"
)

// Terminal reports whether the status permits no further transition.
func (s BookingStatus) Terminal() bool { return s != BookingWaiting }

type Booking struct {
	ID       int64         `json:"id"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	ItemID   int64         `json:"-"`
	BookerID int64         `json:"-"`
	Status   BookingStatus `json:"status"`
}

// BookingView embeds the resolved item and booker summaries returned
// by every booking read.
type BookingView struct {
	Booking
	Item   ItemRef `json:"item"`
	Booker UserRef `json:"booker"`
}

type ItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type UserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookingSummary is the short shape attached to owner item reads.
type BookingSummary struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// BookingFilter partitions a user's bookings by time window or status.
type BookingFilter string

const (
	FilterAll      BookingFilter = "ALL"
	FilterCurrent  BookingFilter = "CURRENT"
	FilterPast     BookingFilter = "PAST"
	FilterFuture   BookingFilter = "FUTURE"
	FilterWaiting  BookingFilter = "WAITING"
	FilterRejected BookingFilter = "REJECTED"
)

// ParseBookingFilter accepts the wire `state` param; empty means ALL.
func ParseBookingFilter(s string) (BookingFilter, bool) {
	if s == "" {
		return FilterAll, true
	}
	switch f := BookingFilter(s); f {
	case FilterAll, FilterCurrent, FilterPast, FilterFuture, FilterWaiting, FilterRejected:
		return f, true
	}
	return "", false
}

type CreateBookingReq struct {
	ItemID int64     `json:"itemId" validate:"required,gt=0"`
	Start  time.Time `json:"start" validate:"required"`
	End    time.Time `json:"end" validate:"required"`
}
