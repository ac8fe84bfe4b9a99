package listings

import minisitelistings "github.com/countyhub/go-minisite/listings"

type (
	Listing     = minisitelistings.Listing
	InlinePhoto = minisitelistings.InlinePhoto
	Reader      = minisitelistings.Reader
)

var (
	ErrListingNotFound = minisitelistings.ErrListingNotFound
	ErrNameRequired    = minisitelistings.ErrNameRequired
	ErrSlugRequired    = minisitelistings.ErrSlugRequired
)
