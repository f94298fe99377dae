package models

import "time"

// Permission is a (user, feature) grant row. At most one row exists per
// pair; re-granting inserts a fresh row only after a revoke.
type Permission struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	UserID    uint    `json:"user_id" gorm:"index:idx_user_feature,unique;not null"`
	Feature   Feature `json:"feature" gorm:"index:idx_user_feature,unique;not null;size:50"`
	CreatedAt time.Time
}

func (Permission) TableName() string {
	return "permissions"
}

// SchoolPermission is a (user, school) grant row, the scope tier of the
// permission model. Same uniqueness rule as Permission.
type SchoolPermission struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	UserID    uint `json:"user_id" gorm:"index:idx_user_school,unique;not null"`
	SchoolID  uint `json:"school_id" gorm:"index:idx_user_school,unique;not null"`
	CreatedAt time.Time
}

func (SchoolPermission) TableName() string {
	return "school_permissions"
}
