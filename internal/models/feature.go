package models

import (
	"errors"
	"fmt"
)

// Feature is a named capability an operation can require. The catalog is a
// closed, process-wide constant set; it is never extended at runtime.
type Feature string

const (
	FeatureDeviceList           Feature = "DEVICE_LIST"
	FeatureDeviceManagement     Feature = "DEVICE_MANAGEMENT"
	FeatureSchoolManagement     Feature = "SCHOOL_MANAGEMENT"
	FeatureClassroomManagement  Feature = "CLASSROOM_MANAGEMENT"
	FeatureFloorPlanManagement  Feature = "FLOORPLAN_MANAGEMENT"
	FeatureDataDelete           Feature = "DATA_DELETE"
	FeatureWirelessAPList       Feature = "WIRELESS_AP_LIST"
	FeatureWirelessAPManagement Feature = "WIRELESS_AP_MANAGEMENT"
	FeatureSubmissionFiles      Feature = "SUBMISSION_FILES"
	FeatureDeviceInspection     Feature = "DEVICE_INSPECTION"
	FeatureQRCodeGeneration     Feature = "QR_CODE_GENERATION"
)

// ErrUnknownFeature marks a reference to a feature outside the catalog.
// This is a configuration error, not a per-request condition.
var ErrUnknownFeature = errors.New("unknown feature")

type featureInfo struct {
	id    uint
	label string
}

// catalog assigns each feature a stable numeric id and the display label
// used in denial messages. Defined once, never mutated.
var catalog = map[Feature]featureInfo{
	FeatureDeviceList:           {1, "Geräteliste"},
	FeatureDeviceManagement:     {2, "Geräteverwaltung"},
	FeatureSchoolManagement:     {3, "Schulverwaltung"},
	FeatureClassroomManagement:  {4, "Raumverwaltung"},
	FeatureFloorPlanManagement:  {5, "Raumplanverwaltung"},
	FeatureDataDelete:           {6, "Datenlöschung"},
	FeatureWirelessAPList:       {7, "Access-Point-Liste"},
	FeatureWirelessAPManagement: {8, "Access-Point-Verwaltung"},
	FeatureSubmissionFiles:      {9, "Abgabedateien"},
	FeatureDeviceInspection:     {10, "Geräteprüfung"},
	FeatureQRCodeGeneration:     {11, "QR-Code-Erzeugung"},
}

// AllFeatures lists the catalog in id order.
var AllFeatures = []Feature{
	FeatureDeviceList,
	FeatureDeviceManagement,
	FeatureSchoolManagement,
	FeatureClassroomManagement,
	FeatureFloorPlanManagement,
	FeatureDataDelete,
	FeatureWirelessAPList,
	FeatureWirelessAPManagement,
	FeatureSubmissionFiles,
	FeatureDeviceInspection,
	FeatureQRCodeGeneration,
}

// ID returns the stable numeric identifier of the feature, or 0 when the
// value is not in the catalog.
func (f Feature) ID() uint {
	return catalog[f].id
}

// Label returns the human-readable display label used in denial messages.
func (f Feature) Label() string {
	if info, ok := catalog[f]; ok {
		return info.label
	}
	return string(f)
}

// Valid reports whether the feature is part of the catalog.
func (f Feature) Valid() bool {
	_, ok := catalog[f]
	return ok
}

// FeatureByName resolves a symbolic name against the catalog.
func FeatureByName(name string) (Feature, error) {
	f := Feature(name)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFeature, name)
	}
	return f, nil
}

// FeatureByID resolves a stable numeric id against the catalog.
func FeatureByID(id uint) (Feature, error) {
	for f, info := range catalog {
		if info.id == id {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: id %d", ErrUnknownFeature, id)
}
