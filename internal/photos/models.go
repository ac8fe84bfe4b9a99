package photos

import minisitephotos "github.com/countyhub/go-minisite/photos"

type (
	Photo              = minisitephotos.Photo
	Service            = minisitephotos.Service
	AddPhotoRequest    = minisitephotos.AddPhotoRequest
	UpdatePhotoRequest = minisitephotos.UpdatePhotoRequest
)

var (
	ErrOwnerRequired   = minisitephotos.ErrOwnerRequired
	ErrURLRequired     = minisitephotos.ErrURLRequired
	ErrURLInvalid      = minisitephotos.ErrURLInvalid
	ErrOrderInvalid    = minisitephotos.ErrOrderInvalid
	ErrPhotoNotFound   = minisitephotos.ErrPhotoNotFound
	ErrReorderMismatch = minisitephotos.ErrReorderMismatch
)
