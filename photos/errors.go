package photos

import "errors"

var (
	ErrOwnerRequired   = errors.New("photos: owning entity is required")
	ErrURLRequired     = errors.New("photos: url is required")
	ErrURLInvalid      = errors.New("photos: url must be absolute http(s) or a rooted path")
	ErrOrderInvalid    = errors.New("photos: order must be zero or positive")
	ErrPhotoNotFound   = errors.New("photos: photo not found")
	ErrReorderMismatch = errors.New("photos: reorder ids must match the listing's photos")
)
