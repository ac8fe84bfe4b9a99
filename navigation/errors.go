package navigation

import "errors"

var (
	ErrOwnerRequired       = errors.New("navigation: owning entity is required")
	ErrLabelRequired       = errors.New("navigation: label is required")
	ErrLinkTypeInvalid     = errors.New("navigation: link type must be page or external")
	ErrPageRequired        = errors.New("navigation: page link requires page_id")
	ErrExternalURLRequired = errors.New("navigation: external link requires external_url")
	ErrExternalURLInvalid  = errors.New("navigation: external_url must be an absolute http(s) URL")
	ErrPageNotFound        = errors.New("navigation: target page not found for this listing")
	ErrItemNotFound        = errors.New("navigation: navigation item not found")
	ErrParentNotFound      = errors.New("navigation: parent item not found for this listing")
	ErrParentSelf          = errors.New("navigation: item cannot be its own parent")
	ErrParentNested        = errors.New("navigation: parent must be a top-level item")
	ErrItemHasChildren     = errors.New("navigation: item with children cannot become a child")
	ErrOrderInvalid        = errors.New("navigation: order must be zero or positive")
)
