package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Phone    string   `gorm:"size:20" json:"phone,omitempty"`
	Role     UserRole `gorm:"size:20;default:'student'" json:"role"`

	// Email verification state. OTP holds only the SHA-256 digest of the
	// issued code; the plaintext goes out by mail and is never stored.
	IsVerified    bool       `gorm:"default:false" json:"isVerified"`
	OTP           string     `gorm:"size:64" json:"-"`
	OTPExpires    *time.Time `json:"-"`
	OTPAttempts   int        `gorm:"default:0" json:"-"`
	OTPLastResend *time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == Admin
}
