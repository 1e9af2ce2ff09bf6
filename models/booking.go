package models

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// AllowedBookingTransitions represents the booking state flow as code.
// Completed and cancelled are terminal and have no outgoing edges.
var AllowedBookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

func CanTransitionBooking(from, to BookingStatus) bool {
	for _, s := range AllowedBookingTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Booking struct {
	gorm.Model
	ClientID   uint   `json:"client_id"`
	Client     User   `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	ProviderID uint   `json:"provider_id"`
	Provider   User   `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	// Date carries the calendar day, TimeSlot the "HH:MM" start within it.
	Date          time.Time     `json:"date"`
	TimeSlot      string        `json:"time_slot"`
	Status        BookingStatus `json:"status" gorm:"default:pending"`
	StatusVersion int           `json:"status_version" gorm:"default:0"`
	Items         []BookingItem `json:"items" gorm:"foreignKey:BookingID"`
	TotalPrice    float64       `json:"total_price"`
	CancelReason  string        `json:"cancel_reason,omitempty"`
}

// BookingItem is a snapshot of one booked service at booking time.
type BookingItem struct {
	gorm.Model
	BookingID uint    `json:"booking_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Duration  int     `json:"duration"` // minutes
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = BookingPending
	}
	return nil
}

func (b *Booking) Terminal() bool {
	return b.Status == BookingCompleted || b.Status == BookingCancelled
}

// StartsAt combines Date and TimeSlot into the booking's start instant.
// A malformed slot falls back to midnight of the booking day.
func (b *Booking) StartsAt() time.Time {
	t, err := time.Parse("15:04", b.TimeSlot)
	if err != nil {
		return time.Date(b.Date.Year(), b.Date.Month(), b.Date.Day(), 0, 0, 0, 0, b.Date.Location())
	}
	return time.Date(b.Date.Year(), b.Date.Month(), b.Date.Day(), t.Hour(), t.Minute(), 0, 0, b.Date.Location())
}

// IsPast reports whether the booking's start has gone by. Status is never
// auto-flipped for overdue bookings; history views compare dates instead.
func (b *Booking) IsPast(now time.Time) bool {
	return b.StartsAt().Before(now)
}
