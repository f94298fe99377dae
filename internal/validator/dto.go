package validator

import "gorm.io/datatypes"

// SignupRequest creates a PENDING account with the EXTERNAL role.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100,alphanum"`
	FullName string `json:"full_name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
}

// UserStatusRequest drives the admin approval workflow.
type UserStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=PENDING APPROVED REJECTED SUSPENDED"`
	Reason *string `json:"reason" validate:"omitempty,max=500"`
}

// UserRoleRequest changes a user's global role. ADMIN is assignable only
// through this explicit admin action.
type UserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN EMPLOYEE EXTERNAL"`
}

// FeatureGrantRequest grants or revokes one feature for one user.
type FeatureGrantRequest struct {
	Feature string `json:"feature" validate:"required,max=50"`
}

// SchoolGrantRequest grants or revokes access to one school for one user.
type SchoolGrantRequest struct {
	SchoolID uint `json:"school_id" validate:"required"`
}

// SchoolCreateRequest creates a school.
type SchoolCreateRequest struct {
	Name      string  `json:"name" validate:"required,max=200"`
	ShortName string  `json:"short_name" validate:"required,max=20"`
	Address   *string `json:"address" validate:"omitempty,max=500"`
}

// SchoolUpdateRequest updates a school.
type SchoolUpdateRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=200"`
	Address *string `json:"address" validate:"omitempty,max=500"`
}

// DeviceCreateRequest registers a device in a school's inventory.
type DeviceCreateRequest struct {
	InventoryNo string  `json:"inventory_no" validate:"required,inventory_no"`
	Type        string  `json:"type" validate:"required,max=50"`
	Vendor      string  `json:"vendor" validate:"omitempty,max=100"`
	Model       string  `json:"model" validate:"omitempty,max=100"`
	SerialNo    *string `json:"serial_no" validate:"omitempty,max=100"`
	ClassroomID *uint   `json:"classroom_id"`
	Notes       *string `json:"notes" validate:"omitempty,max=2000"`
}

// DeviceUpdateRequest updates a device.
type DeviceUpdateRequest struct {
	Type        *string `json:"type" validate:"omitempty,max=50"`
	Vendor      *string `json:"vendor" validate:"omitempty,max=100"`
	Model       *string `json:"model" validate:"omitempty,max=100"`
	SerialNo    *string `json:"serial_no" validate:"omitempty,max=100"`
	Status      *string `json:"status" validate:"omitempty,oneof=ACTIVE IN_REPAIR RETIRED"`
	ClassroomID *uint   `json:"classroom_id"`
	Notes       *string `json:"notes" validate:"omitempty,max=2000"`
}

// ClassroomRequest creates or updates a classroom.
type ClassroomRequest struct {
	Name  string  `json:"name" validate:"required,max=100"`
	Floor int     `json:"floor" validate:"min=-2,max=20"`
	Notes *string `json:"notes" validate:"omitempty,max=1000"`
}

// FloorPlanRequest creates or updates a floor plan.
type FloorPlanRequest struct {
	Name   string         `json:"name" validate:"required,max=100"`
	Floor  int            `json:"floor" validate:"min=-2,max=20"`
	Layout datatypes.JSON `json:"layout" validate:"required"`
}

// WirelessAPRequest creates or updates a wireless access point.
type WirelessAPRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	MACAddress  string  `json:"mac_address" validate:"required,mac"`
	IPAddress   *string `json:"ip_address" validate:"omitempty,ip"`
	ClassroomID *uint   `json:"classroom_id"`
}
