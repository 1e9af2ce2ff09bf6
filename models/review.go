package models

import (
	"gorm.io/gorm"
)

// Review is attached to exactly one booking. The unique index on BookingID
// is what makes the one-review-per-booking invariant hold under races.
type Review struct {
	gorm.Model
	BookingID        uint    `json:"booking_id" gorm:"uniqueIndex"`
	Booking          Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	ClientID         uint    `json:"client_id"`
	Client           User    `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	ProviderID       uint    `json:"provider_id"`
	Rating           int     `json:"rating"`
	Comment          string  `json:"comment"`
	ProviderResponse string  `json:"provider_response,omitempty"`
}
