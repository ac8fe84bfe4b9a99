package pagescmd

import (
	"github.com/countyhub/go-minisite/internal/commands"
	"github.com/countyhub/go-minisite/internal/pages"
	goerrors "github.com/goliatone/go-errors"
)

const (
	codePageSaveFailed   = "PAGE_SAVE_FAILED"
	codePageDeleteFailed = "PAGE_DELETE_FAILED"
	codePageReorderFail  = "PAGE_REORDER_FAILED"
	codePageNotFound     = "PAGE_NOT_FOUND"
	codePageSlugExists   = "PAGE_SLUG_EXISTS"
	codePageInvalid      = "PAGE_INVALID"
)

var pageErrorMappings = []commands.ErrorMapping{
	{Target: pages.ErrPageNotFound, Category: goerrors.CategoryNotFound, Code: codePageNotFound},
	{Target: pages.ErrSlugExists, Category: goerrors.CategoryConflict, Code: codePageSlugExists},
	{Target: pages.ErrOwnerRequired, Category: goerrors.CategoryValidation, Code: codePageInvalid},
	{Target: pages.ErrTitleRequired, Category: goerrors.CategoryValidation, Code: codePageInvalid},
	{Target: pages.ErrSlugRequired, Category: goerrors.CategoryValidation, Code: codePageInvalid},
	{Target: pages.ErrSlugInvalid, Category: goerrors.CategoryValidation, Code: codePageInvalid},
	{Target: pages.ErrOrderInvalid, Category: goerrors.CategoryValidation, Code: codePageInvalid},
	{Target: pages.ErrSectionsInvalid, Category: goerrors.CategoryValidation, Code: codePageInvalid},
	{Target: pages.ErrReorderMismatch, Category: goerrors.CategoryValidation, Code: codePageInvalid},
}

func classify(err error, fallback string) error {
	return commands.Classify(err, fallback, pageErrorMappings...)
}
