package models

import (
	"time"
)

// Notification types emitted by the engines.
const (
	NotifBookingCreated    = "booking_created"
	NotifBookingConfirmed  = "booking_confirmed"
	NotifBookingCompleted  = "booking_completed"
	NotifBookingCancelled  = "booking_cancelled"
	NotifBookingReminder   = "booking_reminder"
	NotifProviderVerified  = "provider_verified"
	NotifProviderRejected  = "provider_rejected"
	NotifProviderSuspended = "provider_suspended"
	NotifProviderActivated = "provider_activated"
	NotifReviewReceived    = "review_received"
	NotifReviewRemoved     = "review_removed"
	NotifAccountBlocked    = "account_blocked"
	NotifRoleChanged       = "role_changed"
)

// Notification belongs to its recipient alone: only the recipient marks it
// read or deletes it, engines only ever append.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"index;not null"`
	Type        string    `json:"type" gorm:"not null"`
	Data        string    `json:"data" gorm:"type:text"` // JSON payload referencing the triggering entity
	Read        bool      `json:"read" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
