package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DeviceStatus string

const (
	DeviceActive   DeviceStatus = "ACTIVE"
	DeviceInRepair DeviceStatus = "IN_REPAIR"
	DeviceRetired  DeviceStatus = "RETIRED"
)

// Device is a managed IT asset assigned to a school and optionally a room.
type Device struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	InventoryNo string       `json:"inventory_no" gorm:"uniqueIndex;not null;size:50"`
	Type        string       `json:"type" gorm:"not null;size:50"`
	Vendor      string       `json:"vendor" gorm:"size:100"`
	Model       string       `json:"model" gorm:"size:100"`
	SerialNo    *string      `json:"serial_no" gorm:"size:100"`
	Status      DeviceStatus `json:"status" gorm:"not null;size:20;default:ACTIVE"`

	SchoolID    uint  `json:"school_id" gorm:"index;not null"`
	ClassroomID *uint `json:"classroom_id" gorm:"index"`

	LastInspectedAt *time.Time `json:"last_inspected_at"`
	Notes           *string    `json:"notes" gorm:"size:2000"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Device) TableName() string {
	return "devices"
}

// Classroom is a room within a school; devices and wireless APs hang off it.
type Classroom struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	Name     string  `json:"name" gorm:"not null;size:100"`
	Floor    int     `json:"floor"`
	SchoolID uint    `json:"school_id" gorm:"index;not null"`
	Notes    *string `json:"notes" gorm:"size:1000"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Classroom) TableName() string {
	return "classrooms"
}

// FloorPlan stores a drawable layout per school floor. The layout is an
// opaque JSON document produced by the frontend editor.
type FloorPlan struct {
	ID       uint           `json:"id" gorm:"primaryKey"`
	SchoolID uint           `json:"school_id" gorm:"index;not null"`
	Floor    int            `json:"floor"`
	Name     string         `json:"name" gorm:"size:100"`
	Layout   datatypes.JSON `json:"layout"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (FloorPlan) TableName() string {
	return "floor_plans"
}

// WirelessAP is an access point installed in a school.
type WirelessAP struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null;size:100"`
	MACAddress  string  `json:"mac_address" gorm:"uniqueIndex;not null;size:17"`
	IPAddress   *string `json:"ip_address" gorm:"size:45"`
	SchoolID    uint    `json:"school_id" gorm:"index;not null"`
	ClassroomID *uint   `json:"classroom_id" gorm:"index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (WirelessAP) TableName() string {
	return "wireless_aps"
}
