package photoscmd

import (
	"github.com/countyhub/go-minisite/internal/commands"
	"github.com/countyhub/go-minisite/internal/photos"
	goerrors "github.com/goliatone/go-errors"
)

const (
	codePhotoSaveFailed    = "PHOTO_SAVE_FAILED"
	codePhotoDeleteFailed  = "PHOTO_DELETE_FAILED"
	codePhotoReorderFailed = "PHOTO_REORDER_FAILED"
	codePhotoNotFound      = "PHOTO_NOT_FOUND"
	codePhotoInvalid       = "PHOTO_INVALID"
)

var photoErrorMappings = []commands.ErrorMapping{
	{Target: photos.ErrPhotoNotFound, Category: goerrors.CategoryNotFound, Code: codePhotoNotFound},
	{Target: photos.ErrOwnerRequired, Category: goerrors.CategoryValidation, Code: codePhotoInvalid},
	{Target: photos.ErrURLRequired, Category: goerrors.CategoryValidation, Code: codePhotoInvalid},
	{Target: photos.ErrURLInvalid, Category: goerrors.CategoryValidation, Code: codePhotoInvalid},
	{Target: photos.ErrOrderInvalid, Category: goerrors.CategoryValidation, Code: codePhotoInvalid},
	{Target: photos.ErrReorderMismatch, Category: goerrors.CategoryValidation, Code: codePhotoInvalid},
}

func classify(err error, fallback string) error {
	return commands.Classify(err, fallback, photoErrorMappings...)
}
