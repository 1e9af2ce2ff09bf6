package models

import (
	"time"
)

// Administrative roles. Role controls what a user may do in the admin
// console; AccountType controls which side of the marketplace they are on.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

const (
	AccountTypeClient   = "client"
	AccountTypeProvider = "provider"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name"`
	Email        string    `json:"email" gorm:"unique"`
	Password     string    `json:"password,omitempty"`
	Role         string    `json:"role" gorm:"default:user"`
	AccountType  string    `json:"account_type" gorm:"default:client"`
	IsBlocked    bool      `json:"is_blocked" gorm:"default:false"`
	BlockReason  string    `json:"block_reason,omitempty"`
	IsVerified   bool      `json:"is_verified"`
	OTP          string    `json:"otp,omitempty"`
	OTPExpiresAt time.Time `json:"otp_expires_at,omitempty"`
	ProfileImage string    `json:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRole reports whether s is one of the administrative roles.
func ValidRole(s string) bool {
	return s == RoleUser || s == RoleAdmin || s == RoleSuperAdmin
}

// IsStaff reports whether the user sits on the admin side of the console.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
