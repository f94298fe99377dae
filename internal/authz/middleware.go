package authz

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/schoolit/asset-service/internal/models"
)

// Gin context keys shared with the authentication middleware and handlers.
const (
	ContextUsername = "username"
	ContextUser     = "current_user"
)

// ErrUserNotFound is returned by UserLoader implementations when the
// identity resolves to no account.
var ErrUserNotFound = errors.New("user not found")

// UserLoader resolves the ambient identity to a full user record.
type UserLoader interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Policy is the static descriptor attached to a protected route.
// SchoolParam names the route parameter carrying the school id; when empty,
// or when the parameter is absent from the matched route, only the feature
// tier is enforced.
type Policy struct {
	Feature     models.Feature
	SchoolParam string
}

// MustPolicy validates the feature against the catalog at route-registration
// time. An uncataloged feature is a configuration error and fatal at
// startup, never a per-request condition.
func MustPolicy(feature models.Feature, schoolParam string) Policy {
	if !feature.Valid() {
		panic(fmt.Sprintf("authz: %v: %q", models.ErrUnknownFeature, feature))
	}
	return Policy{Feature: feature, SchoolParam: schoolParam}
}

// Guard turns policies into enforcement middleware. It guarantees the
// protected handler does not run, and therefore has no side effects, unless
// the decision is an allow.
type Guard struct {
	checker *Checker
	users   UserLoader
}

func NewGuard(checker *Checker, users UserLoader) *Guard {
	return &Guard{checker: checker, users: users}
}

// Require builds the middleware for one policy. Evaluation order follows the
// decision engine: identity, user record, feature tier, scope tier.
func (g *Guard) Require(policy Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := c.Get(ContextUsername)
		if !ok {
			abortDenied(c, &Error{Kind: DenyUnauthenticated, Feature: policy.Feature})
			return
		}

		user, err := g.users.GetByUsername(c.Request.Context(), username.(string))
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				// Identity without an account: fail closed.
				abortDenied(c, &Error{Kind: DenyUnauthenticated, Feature: policy.Feature})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   "internal",
				"message": "failed to load user",
			})
			return
		}
		// Only APPROVED accounts may act; suspension or rejection ends
		// every grant and the admin bypass with it.
		if !user.IsApproved() {
			abortDenied(c, &Error{Kind: DenyUnauthenticated, Feature: policy.Feature})
			return
		}

		schoolID, derr := g.resolveSchoolParam(c, policy)
		if derr != nil {
			abortDenied(c, derr)
			return
		}

		decision, err := g.checker.Authorize(c.Request.Context(), user, policy.Feature, schoolID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   "internal",
				"message": "authorization check failed",
			})
			return
		}
		if !decision.Allowed {
			abortDenied(c, decision.Err().(*Error))
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// Authenticate resolves the identity to a user record without enforcing a
// feature. Used on routes whose checks live in the service layer (admin
// grant management) or that only need the caller's account (profile, UI
// flags). Fails closed exactly like Require.
func (g *Guard) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := c.Get(ContextUsername)
		if !ok {
			abortDenied(c, &Error{Kind: DenyUnauthenticated})
			return
		}

		user, err := g.users.GetByUsername(c.Request.Context(), username.(string))
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				abortDenied(c, &Error{Kind: DenyUnauthenticated})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   "internal",
				"message": "failed to load user",
			})
			return
		}
		if !user.IsApproved() {
			abortDenied(c, &Error{Kind: DenyUnauthenticated})
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// resolveSchoolParam extracts the school id named by the policy from the
// matched route. A missing parameter skips the scope tier entirely; a
// present but unparsable one denies as an unknown scope.
func (g *Guard) resolveSchoolParam(c *gin.Context, policy Policy) (*uint, *Error) {
	if policy.SchoolParam == "" {
		return nil, nil
	}
	raw := c.Param(policy.SchoolParam)
	if raw == "" {
		raw = c.Query(policy.SchoolParam)
	}
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, &Error{Kind: DenyUnknownScope, Feature: policy.Feature}
	}
	schoolID := uint(id)
	return &schoolID, nil
}

func abortDenied(c *gin.Context, derr *Error) {
	status := http.StatusForbidden
	switch derr.Kind {
	case DenyUnauthenticated:
		status = http.StatusUnauthorized
	case DenyUnknownScope:
		status = http.StatusNotFound
	}

	body := gin.H{
		"error":   "forbidden",
		"kind":    derr.Kind,
		"message": derr.Error(),
	}
	if derr.Kind == DenyUnauthenticated {
		body["error"] = "unauthorized"
	}
	if derr.Feature != "" {
		body["feature"] = derr.Feature
	}
	if derr.SchoolID != nil {
		body["school_id"] = *derr.SchoolID
	}
	c.AbortWithStatusJSON(status, body)
}

// CurrentUser returns the user record the guard placed in the context.
// Handlers behind a Require middleware can rely on it being present.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ContextUser); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
