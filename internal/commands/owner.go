package commands

import (
	"strings"

	"github.com/countyhub/go-minisite/entity"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidateOwner records entity_type and entity_id problems into errs using
// prefix to namespace the error codes.
func ValidateOwner(errs validation.Errors, prefix string, entityType, entityID string) {
	if _, err := entity.ParseType(entityType); err != nil {
		errs["entity_type"] = validation.NewError(prefix+".entity_type_invalid", "entity_type must be a known listing type")
	}
	if strings.TrimSpace(entityID) == "" {
		errs["entity_id"] = validation.NewError(prefix+".entity_id_required", "entity_id is required")
	}
}

// OwnerRef builds the owner reference of an already validated message.
func OwnerRef(entityType, entityID string) (entity.Ref, error) {
	return entity.NewRef(entityType, entityID)
}
