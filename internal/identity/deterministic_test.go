package identity_test

import (
	"testing"

	"github.com/countyhub/go-minisite/entity"
	"github.com/countyhub/go-minisite/internal/identity"
	"github.com/google/uuid"
)

func TestAutoNavigationItemUUIDIsStable(t *testing.T) {
	pageID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	first := identity.AutoNavigationItemUUID(entity.Church("st-marks"), pageID)
	second := identity.AutoNavigationItemUUID(entity.Church("st-marks"), pageID)
	if first == uuid.Nil || first != second {
		t.Fatalf("expected stable non-nil id, got %s and %s", first, second)
	}
	other := identity.AutoNavigationItemUUID(entity.School("st-marks"), pageID)
	if other == first {
		t.Fatalf("expected owner type to change the derived id")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if got := identity.UUID("   "); got != uuid.Nil {
		t.Fatalf("expected nil uuid for empty key, got %s", got)
	}
}
