package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleEmployee UserRole = "EMPLOYEE"
	RoleExternal UserRole = "EXTERNAL"
)

type UserStatus string

const (
	StatusPending   UserStatus = "PENDING"
	StatusApproved  UserStatus = "APPROVED"
	StatusRejected  UserStatus = "REJECTED"
	StatusSuspended UserStatus = "SUSPENDED"
)

// User is an account in the admin application. Only APPROVED users can
// authenticate; the ADMIN role carries the bypass for fine-grained checks.
type User struct {
	ID       uint       `json:"id" gorm:"primaryKey"`
	Username string     `json:"username" gorm:"uniqueIndex;not null;size:100"`
	FullName string     `json:"full_name" gorm:"size:100"`
	Email    string     `json:"email" gorm:"size:255"`
	Role     UserRole   `json:"role" gorm:"not null;size:20;default:EXTERNAL"`
	Status   UserStatus `json:"status" gorm:"not null;size:20;default:PENDING"`

	// Grants are owned rows; deleting the user deletes them.
	Permissions       []Permission       `json:"permissions,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	SchoolPermissions []SchoolPermission `json:"school_permissions,omitempty" gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the role that bypasses
// per-feature and per-school grants.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IsApproved reports whether the account may authenticate at all.
func (u *User) IsApproved() bool {
	return u != nil && u.Status == StatusApproved
}
