package models

import (
	"gorm.io/gorm"
)

type TrustState string

const (
	TrustPending   TrustState = "pending"
	TrustVerified  TrustState = "verified"
	TrustRejected  TrustState = "rejected"
	TrustSuspended TrustState = "suspended"
)

// Provider is the business profile attached to a provider account.
// TrustState is admin-owned; IsActive is the owner's own visibility toggle
// and only means anything while the provider is verified.
type Provider struct {
	gorm.Model
	UserID           uint       `json:"user_id" gorm:"uniqueIndex"`
	User             User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	BusinessName     string     `json:"business_name"`
	About            string     `json:"about"`
	Address          string     `json:"address"`
	City             string     `json:"city"`
	PhoneNumber      string     `json:"phone_number"`
	TrustState       TrustState `json:"trust_state" gorm:"default:pending"`
	RejectionReason  string     `json:"rejection_reason,omitempty"`
	SuspensionReason string     `json:"suspension_reason,omitempty"`
	VerifiedBy       uint       `json:"verified_by,omitempty"`
	IsActive         bool       `json:"is_active" gorm:"default:true"`
}

// AllowedTrustTransitions represents the verification workflow as code.
// Rejected is terminal (re-submission is a manual process), deletion is
// handled separately and only permitted from rejected or suspended.
var AllowedTrustTransitions = map[TrustState][]TrustState{
	TrustPending:   {TrustVerified, TrustRejected},
	TrustVerified:  {TrustSuspended},
	TrustSuspended: {TrustVerified},
}

func CanChangeTrust(from, to TrustState) bool {
	for _, s := range AllowedTrustTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Bookable reports whether clients may create bookings against this provider.
func (p *Provider) Bookable() bool {
	return p.TrustState == TrustVerified && p.IsActive
}
