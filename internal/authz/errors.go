package authz

import (
	"fmt"

	"github.com/schoolit/asset-service/internal/models"
)

// DenyKind classifies why an authorization decision denied the call.
type DenyKind string

const (
	// DenyUnauthenticated: no identity in the calling context, or the
	// identity resolved to no account (fail closed).
	DenyUnauthenticated DenyKind = "UNAUTHENTICATED"

	// DenyFeature: the user holds no grant for the required feature.
	DenyFeature DenyKind = "FEATURE_DENIED"

	// DenyScope: the feature check passed but the user holds no grant for
	// the requested school.
	DenyScope DenyKind = "SCOPE_DENIED"

	// DenyUnknownScope: the referenced school does not exist.
	DenyUnknownScope DenyKind = "UNKNOWN_SCOPE"
)

// Error is the typed failure surfaced when an enforced operation is denied.
// The wrapped operation has not run when the caller sees this error.
type Error struct {
	Kind     DenyKind
	Feature  models.Feature
	SchoolID *uint
}

func (e *Error) Error() string {
	switch e.Kind {
	case DenyUnauthenticated:
		return "authorization: caller is not authenticated"
	case DenyFeature:
		return fmt.Sprintf("authorization: feature %s denied", e.Feature)
	case DenyScope:
		return fmt.Sprintf("authorization: access to school %d denied", derefID(e.SchoolID))
	case DenyUnknownScope:
		return fmt.Sprintf("authorization: school %d does not exist", derefID(e.SchoolID))
	}
	return "authorization: denied"
}

func derefID(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}
