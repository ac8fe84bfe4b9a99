package logging

import (
	"context"
	"maps"

	"github.com/countyhub/go-minisite/entity"
	"github.com/countyhub/go-minisite/pkg/interfaces"
)

const (
	fieldEntityType = "entity_type"
	fieldEntityID   = "entity_id"
)

// WithFields attaches a copy of fields to logger. Nil loggers and empty maps
// are returned unchanged.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	return logger.WithFields(maps.Clone(fields))
}

// WithOwner tags every entry with the owning listing.
func WithOwner(logger interfaces.Logger, owner entity.Ref) interfaces.Logger {
	if owner.IsZero() {
		return logger
	}
	return WithFields(logger, map[string]any{
		fieldEntityType: string(owner.Type),
		fieldEntityID:   owner.ID,
	})
}

// OwnerContext stores the owning listing on ctx so loggers built with
// WithContext pick it up.
func OwnerContext(ctx context.Context, owner entity.Ref) context.Context {
	if owner.IsZero() {
		return ctx
	}
	return ContextWithFields(ctx, map[string]any{
		fieldEntityType: string(owner.Type),
		fieldEntityID:   owner.ID,
	})
}
