package authz

import (
	"context"
	"errors"

	"github.com/schoolit/asset-service/internal/models"
)

// SchoolFinder resolves a school id to its record, for existence checks in
// the scoped helper. Implementations return ErrSchoolNotFound when the id
// does not exist.
type SchoolFinder interface {
	GetByID(ctx context.Context, id uint) (*models.School, error)
}

var ErrSchoolNotFound = errors.New("school not found")

// Denial is the user-facing outcome for call sites that must keep producing
// a response (flash message plus redirect) instead of aborting.
type Denial struct {
	Feature  models.Feature
	SchoolID *uint
	Message  string
}

// denialMessages maps each feature to the message shown when the feature
// tier denies. Uncataloged features fall back to a generic message.
var denialMessages = map[models.Feature]string{
	models.FeatureDeviceList:           "Sie haben keine Berechtigung, die Geräteliste einzusehen.",
	models.FeatureDeviceManagement:     "Sie haben keine Berechtigung zur Geräteverwaltung.",
	models.FeatureSchoolManagement:     "Sie haben keine Berechtigung zur Schulverwaltung.",
	models.FeatureClassroomManagement:  "Sie haben keine Berechtigung zur Raumverwaltung.",
	models.FeatureFloorPlanManagement:  "Sie haben keine Berechtigung zur Raumplanverwaltung.",
	models.FeatureDataDelete:           "Sie haben keine Berechtigung, Daten zu löschen.",
	models.FeatureWirelessAPList:       "Sie haben keine Berechtigung, die Access-Point-Liste einzusehen.",
	models.FeatureWirelessAPManagement: "Sie haben keine Berechtigung zur Access-Point-Verwaltung.",
	models.FeatureSubmissionFiles:      "Sie haben keine Berechtigung für Abgabedateien.",
	models.FeatureDeviceInspection:     "Sie haben keine Berechtigung zur Geräteprüfung.",
	models.FeatureQRCodeGeneration:     "Sie haben keine Berechtigung, QR-Codes zu erzeugen.",
}

const (
	genericDenialMessage = "Sie haben keine Berechtigung für diese Funktion."
	schoolDenialMessage  = "Sie haben keine Berechtigung für diese Schule."
	schoolMissingMessage = "Die angegebene Schule wurde nicht gefunden."
)

func featureDenial(feature models.Feature) *Denial {
	msg, ok := denialMessages[feature]
	if !ok {
		msg = genericDenialMessage
	}
	return &Denial{Feature: feature, Message: msg}
}

// Helper exposes the decision engine to non-intercepted call sites: filling
// UI visibility attributes and redirect-style denial in page flows.
type Helper struct {
	checker *Checker
	schools SchoolFinder
}

func NewHelper(checker *Checker, schools SchoolFinder) *Helper {
	return &Helper{checker: checker, schools: schools}
}

// VisibilityFlags answers, per catalog feature, whether the user may use it.
// A nil user gets every flag false.
func (h *Helper) VisibilityFlags(ctx context.Context, user *models.User) (map[models.Feature]bool, error) {
	flags := make(map[models.Feature]bool, len(models.AllFeatures))
	for _, feature := range models.AllFeatures {
		if user == nil {
			flags[feature] = false
			continue
		}
		ok, err := h.checker.MayUseFeature(ctx, user, feature)
		if err != nil {
			return nil, err
		}
		flags[feature] = ok
	}
	return flags, nil
}

// CheckFeatureOrDeny returns the user unchanged when the feature tier
// allows, otherwise a denial message keyed by the feature. The error return
// carries store failures only.
func (h *Helper) CheckFeatureOrDeny(ctx context.Context, user *models.User, feature models.Feature) (*models.User, *Denial, error) {
	ok, err := h.checker.MayUseFeature(ctx, user, feature)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, featureDenial(feature), nil
	}
	return user, nil, nil
}

// CheckScopedOrDeny runs the feature tier first, then resolves the school's
// existence, then the scope tier, in the same order as the decision engine.
// A nil school id makes it equivalent to CheckFeatureOrDeny.
func (h *Helper) CheckScopedOrDeny(ctx context.Context, user *models.User, feature models.Feature, schoolID *uint) (*models.User, *Denial, error) {
	user, denial, err := h.CheckFeatureOrDeny(ctx, user, feature)
	if err != nil || denial != nil {
		return nil, denial, err
	}
	if schoolID == nil {
		return user, nil, nil
	}

	if _, err := h.schools.GetByID(ctx, *schoolID); err != nil {
		if errors.Is(err, ErrSchoolNotFound) {
			return nil, &Denial{Feature: feature, SchoolID: schoolID, Message: schoolMissingMessage}, nil
		}
		return nil, nil, err
	}

	ok, err := h.checker.MayAccessSchool(ctx, user, *schoolID)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, &Denial{Feature: feature, SchoolID: schoolID, Message: schoolDenialMessage}, nil
	}
	return user, nil, nil
}
