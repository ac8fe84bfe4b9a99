package identity

import (
	"strings"

	"github.com/countyhub/go-minisite/entity"
	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const keyPrefix = "go-minisite"

// UUID derives a deterministic UUID from key with go-hashid. An empty key
// yields uuid.Nil.
func UUID(key string) uuid.UUID {
	key = strings.TrimSpace(key)
	if key == "" {
		return uuid.Nil
	}
	id, err := hashid.NewUUID(key, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err == nil && id != uuid.Nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
}

// AutoNavigationItemUUID is the id of the navigation item a page editor
// manages for pageID. Saving the same page twice targets the same item.
func AutoNavigationItemUUID(owner entity.Ref, pageID uuid.UUID) uuid.UUID {
	return UUID(scopedKey("navigation_item:auto", owner, pageID.String()))
}

// ImportedPageUUID derives the id of a page created from a markdown file so
// re-importing the same file updates instead of duplicating.
func ImportedPageUUID(owner entity.Ref, slug string) uuid.UUID {
	return UUID(scopedKey("page:import", owner, strings.ToLower(strings.TrimSpace(slug))))
}

// scopedKey keeps keys from different record kinds and owners apart.
func scopedKey(kind string, owner entity.Ref, local string) string {
	return strings.Join([]string{keyPrefix, kind, owner.String(), local}, ":")
}
