package navcmd

import (
	"github.com/countyhub/go-minisite/internal/commands"
	"github.com/countyhub/go-minisite/internal/navigation"
	goerrors "github.com/goliatone/go-errors"
)

const (
	codeNavigationSaveFailed   = "NAVIGATION_SAVE_FAILED"
	codeNavigationDeleteFailed = "NAVIGATION_DELETE_FAILED"
	codeNavigationNotFound     = "NAVIGATION_ITEM_NOT_FOUND"
	codeNavigationPageNotFound = "NAVIGATION_PAGE_NOT_FOUND"
	codeNavigationInvalid      = "NAVIGATION_INVALID"
)

var navigationErrorMappings = []commands.ErrorMapping{
	{Target: navigation.ErrItemNotFound, Category: goerrors.CategoryNotFound, Code: codeNavigationNotFound},
	{Target: navigation.ErrPageNotFound, Category: goerrors.CategoryValidation, Code: codeNavigationPageNotFound},
	{Target: navigation.ErrParentNotFound, Category: goerrors.CategoryValidation, Code: codeNavigationInvalid},
	{Target: navigation.ErrParentSelf, Category: goerrors.CategoryValidation, Code: codeNavigationInvalid},
	{Target: navigation.ErrParentNested, Category: goerrors.CategoryValidation, Code: codeNavigationInvalid},
	{Target: navigation.ErrItemHasChildren, Category: goerrors.CategoryValidation, Code: codeNavigationInvalid},
	{Target: navigation.ErrOwnerRequired, Category: goerrors.CategoryValidation, Code: codeNavigationInvalid},
	{Target: navigation.ErrLabelRequired, Category: goerrors.CategoryValidation, Code: codeNavigationInvalid},
	{Target: navigation.ErrLinkTypeInvalid, Category: goerrors.CategoryValidation, Code: codeNavigationInvalid},
	{Target: navigation.ErrPageRequired, Category: goerrors.CategoryValidation, Code: codeNavigationInvalid},
	{Target: navigation.ErrExternalURLRequired, Category: goerrors.CategoryValidation, Code: codeNavigationInvalid},
	{Target: navigation.ErrExternalURLInvalid, Category: goerrors.CategoryValidation, Code: codeNavigationInvalid},
	{Target: navigation.ErrOrderInvalid, Category: goerrors.CategoryValidation, Code: codeNavigationInvalid},
}

func classify(err error, fallback string) error {
	return commands.Classify(err, fallback, navigationErrorMappings...)
}
