package models

import (
	"time"

	"gorm.io/gorm"
)

// School is the resource scope of the permission model. The authorization
// engine only ever looks at its ID.
type School struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	Name      string  `json:"name" gorm:"not null;size:200"`
	ShortName string  `json:"short_name" gorm:"uniqueIndex;size:20"`
	Address   *string `json:"address" gorm:"size:500"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (School) TableName() string {
	return "schools"
}
