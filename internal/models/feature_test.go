package models

import (
	"errors"
	"testing"
)

func TestFeatureCatalog(t *testing.T) {
	t.Run("every feature has a unique id and a label", func(t *testing.T) {
		seen := make(map[uint]Feature)
		for _, f := range AllFeatures {
			if !f.Valid() {
				t.Errorf("%s should be in the catalog", f)
			}
			id := f.ID()
			if id == 0 {
				t.Errorf("%s has no id", f)
			}
			if other, dup := seen[id]; dup {
				t.Errorf("id %d assigned to both %s and %s", id, other, f)
			}
			seen[id] = f
			if f.Label() == string(f) {
				t.Errorf("%s has no display label", f)
			}
		}
	})

	t.Run("AllFeatures covers the whole catalog", func(t *testing.T) {
		if len(AllFeatures) != len(catalog) {
			t.Errorf("AllFeatures lists %d features, catalog has %d", len(AllFeatures), len(catalog))
		}
	})

	t.Run("uncataloged value", func(t *testing.T) {
		f := Feature("NOT_A_FEATURE")
		if f.Valid() {
			t.Error("arbitrary strings are not features")
		}
		if f.ID() != 0 {
			t.Error("uncataloged features have id 0")
		}
		if f.Label() != "NOT_A_FEATURE" {
			t.Errorf("uncataloged label falls back to the raw value, got %q", f.Label())
		}
	})
}

func TestFeatureByName(t *testing.T) {
	f, err := FeatureByName("DEVICE_LIST")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != FeatureDeviceList {
		t.Errorf("expected %s, got %s", FeatureDeviceList, f)
	}

	if _, err := FeatureByName("NOT_A_FEATURE"); !errors.Is(err, ErrUnknownFeature) {
		t.Fatalf("expected ErrUnknownFeature, got %v", err)
	}
}

func TestFeatureByID(t *testing.T) {
	f, err := FeatureByID(FeatureDeviceInspection.ID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != FeatureDeviceInspection {
		t.Errorf("expected %s, got %s", FeatureDeviceInspection, f)
	}

	if _, err := FeatureByID(0); !errors.Is(err, ErrUnknownFeature) {
		t.Fatalf("expected ErrUnknownFeature, got %v", err)
	}
}

func TestUserIsAdmin(t *testing.T) {
	tests := []struct {
		name string
		user *User
		want bool
	}{
		{"nil user", nil, false},
		{"admin", &User{Role: RoleAdmin}, true},
		{"employee", &User{Role: RoleEmployee}, false},
		{"external", &User{Role: RoleExternal}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.IsAdmin(); got != tt.want {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.want)
			}
		})
	}
}
