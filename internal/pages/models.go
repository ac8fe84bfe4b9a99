package pages

import minisitepages "github.com/countyhub/go-minisite/pages"

type (
	Page            = minisitepages.Page
	Content         = minisitepages.Content
	Service         = minisitepages.Service
	SavePageRequest = minisitepages.SavePageRequest
)

var (
	ErrOwnerRequired   = minisitepages.ErrOwnerRequired
	ErrTitleRequired   = minisitepages.ErrTitleRequired
	ErrSlugRequired    = minisitepages.ErrSlugRequired
	ErrSlugInvalid     = minisitepages.ErrSlugInvalid
	ErrSlugExists      = minisitepages.ErrSlugExists
	ErrPageNotFound    = minisitepages.ErrPageNotFound
	ErrOrderInvalid    = minisitepages.ErrOrderInvalid
	ErrSectionsInvalid = minisitepages.ErrSectionsInvalid
	ErrReorderMismatch = minisitepages.ErrReorderMismatch
)
