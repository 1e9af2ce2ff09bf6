package models

import (
	"gorm.io/gorm"
)

// Service is a catalog entry offered by a provider. Bookings copy the
// chosen services into their own line items, so later catalog edits do not
// rewrite booking history.
type Service struct {
	gorm.Model
	ProviderID  uint     `json:"provider_id"`
	Provider    Provider `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Duration    int      `json:"duration"` // minutes
}
