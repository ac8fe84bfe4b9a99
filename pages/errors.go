package pages

import "errors"

var (
	ErrOwnerRequired   = errors.New("pages: owning entity is required")
	ErrTitleRequired   = errors.New("pages: title is required")
	ErrSlugRequired    = errors.New("pages: slug is required")
	ErrSlugInvalid     = errors.New("pages: slug contains invalid characters")
	ErrSlugExists      = errors.New("pages: slug already exists for this listing")
	ErrPageNotFound    = errors.New("pages: page not found")
	ErrOrderInvalid    = errors.New("pages: order must be zero or positive")
	ErrSectionsInvalid = errors.New("pages: sections are invalid")
	ErrReorderMismatch = errors.New("pages: reorder ids must match the listing's pages")
)
