package navigation

import minisitenav "github.com/countyhub/go-minisite/navigation"

type (
	Item            = minisitenav.Item
	LinkType        = minisitenav.LinkType
	Service         = minisitenav.Service
	SaveItemRequest = minisitenav.SaveItemRequest
)

const (
	LinkTypePage     = minisitenav.LinkTypePage
	LinkTypeExternal = minisitenav.LinkTypeExternal
)

var (
	ErrOwnerRequired       = minisitenav.ErrOwnerRequired
	ErrLabelRequired       = minisitenav.ErrLabelRequired
	ErrLinkTypeInvalid     = minisitenav.ErrLinkTypeInvalid
	ErrPageRequired        = minisitenav.ErrPageRequired
	ErrExternalURLRequired = minisitenav.ErrExternalURLRequired
	ErrExternalURLInvalid  = minisitenav.ErrExternalURLInvalid
	ErrPageNotFound        = minisitenav.ErrPageNotFound
	ErrItemNotFound        = minisitenav.ErrItemNotFound
	ErrParentNotFound      = minisitenav.ErrParentNotFound
	ErrParentSelf          = minisitenav.ErrParentSelf
	ErrParentNested        = minisitenav.ErrParentNested
	ErrItemHasChildren     = minisitenav.ErrItemHasChildren
	ErrOrderInvalid        = minisitenav.ErrOrderInvalid
)
