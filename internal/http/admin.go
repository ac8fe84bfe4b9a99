package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/countyhub/go-minisite/entity"
	pagescmd "github.com/countyhub/go-minisite/internal/commands/pages"
	photoscmd "github.com/countyhub/go-minisite/internal/commands/photos"
	"github.com/countyhub/go-minisite/internal/editor"
	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/internal/navigation"
	"github.com/countyhub/go-minisite/internal/pages"
	"github.com/countyhub/go-minisite/internal/photos"
	"github.com/countyhub/go-minisite/pkg/interfaces"
	"github.com/countyhub/go-minisite/sections"
	"github.com/google/uuid"
)

// AdminAPI registers the JSON endpoints behind the CMS dashboard and the
// page and navigation editors.
type AdminAPI struct {
	basePath      string
	editor        *editor.Service
	pageCommands  *pagescmd.HandlerSet
	photoCommands *photoscmd.HandlerSet
	photos        photos.Service
	logger        interfaces.Logger
}

// AdminOption mutates the AdminAPI configuration.
type AdminOption func(*AdminAPI)

// NewAdminAPI constructs an AdminAPI instance.
func NewAdminAPI(opts ...AdminOption) *AdminAPI {
	api := &AdminAPI{
		basePath: "/admin/api",
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/admin/api").
func WithBasePath(path string) AdminOption {
	return func(api *AdminAPI) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithEditorService wires the dashboard and editors.
func WithEditorService(service *editor.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.editor = service
		}
	}
}

// WithPageCommands wires page delete and reorder.
func WithPageCommands(set *pagescmd.HandlerSet) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.pageCommands = set
		}
	}
}

// WithPhotoCommands wires photo add, delete and reorder.
func WithPhotoCommands(set *photoscmd.HandlerSet) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.photoCommands = set
		}
	}
}

// WithPhotoService wires photo reads.
func WithPhotoService(service photos.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.photos = service
		}
	}
}

func WithAdminLogger(logger interfaces.Logger) AdminOption {
	return func(api *AdminAPI) {
		if api != nil && logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches the admin endpoints to the provided mux.
func (api *AdminAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: admin api is nil")
	}

	base := joinPath(api.basePath, "entities/{type}/{id}")

	mux.HandleFunc("GET "+joinPath(base, "dashboard"), api.handleDashboard)
	api.registerPageRoutes(mux, base)
	api.registerNavigationRoutes(mux, base)
	api.registerPhotoRoutes(mux, base)
	return nil
}

type navigationNodeResponse struct {
	Item     *navigation.Item   `json:"item"`
	Children []*navigation.Item `json:"children"`
}

type dashboardResponse struct {
	Owner      entity.Ref               `json:"owner"`
	Pages      []*pages.Page            `json:"pages"`
	Navigation []navigationNodeResponse `json:"navigation"`
}

func (api *AdminAPI) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if api.editor == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	owner, err := ownerFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	view, err := api.editor.Dashboard().Open(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := dashboardResponse{
		Owner:      view.Owner,
		Pages:      view.Pages,
		Navigation: make([]navigationNodeResponse, 0, len(view.Navigation)),
	}
	if resp.Pages == nil {
		resp.Pages = []*pages.Page{}
	}
	for _, node := range view.Navigation {
		children := node.Children
		if children == nil {
			children = []*navigation.Item{}
		}
		resp.Navigation = append(resp.Navigation, navigationNodeResponse{Item: node.Item, Children: children})
	}
	writeJSON(w, http.StatusOK, resp)
}

type orderPayload struct {
	IDs []uuid.UUID `json:"ids"`
}

// Pages

type pagePayload struct {
	Title           *string             `json:"title,omitempty"`
	Slug            *string             `json:"slug,omitempty"`
	IsPublished     *bool               `json:"is_published,omitempty"`
	IsHomepage      *bool               `json:"is_homepage,omitempty"`
	Order           *int                `json:"order,omitempty"`
	MetaTitle       *string             `json:"meta_title,omitempty"`
	MetaDescription *string             `json:"meta_description,omitempty"`
	Sections        *[]sections.Section `json:"sections,omitempty"`
	AddToNavigation *bool               `json:"add_to_navigation,omitempty"`
	NavigationLabel *string             `json:"navigation_label,omitempty"`
	NavigationOrder *int                `json:"navigation_order,omitempty"`
}

// apply copies the fields present in the payload onto the editor. The title
// goes first so an explicit slug wins over the derived one.
func (p pagePayload) apply(ed *editor.PageEditor) error {
	if p.Title != nil {
		ed.SetTitle(*p.Title)
	}
	if p.Slug != nil {
		ed.SetSlug(*p.Slug)
	}
	if p.IsPublished != nil {
		ed.SetPublished(*p.IsPublished)
	}
	if p.IsHomepage != nil {
		ed.SetHomepage(*p.IsHomepage)
	}
	if p.Order != nil {
		ed.SetOrder(*p.Order)
	}
	if p.MetaTitle != nil || p.MetaDescription != nil {
		state := ed.State()
		title, description := state.MetaTitle, state.MetaDescription
		if p.MetaTitle != nil {
			title = *p.MetaTitle
		}
		if p.MetaDescription != nil {
			description = *p.MetaDescription
		}
		ed.SetMeta(title, description)
	}
	if p.Sections != nil {
		if err := ed.SetSections(*p.Sections); err != nil {
			return err
		}
	}
	if p.AddToNavigation != nil {
		ed.SetAddToNavigation(*p.AddToNavigation)
	}
	if p.NavigationLabel != nil {
		ed.SetNavigationLabel(*p.NavigationLabel)
	}
	if p.NavigationOrder != nil {
		ed.SetNavigationOrder(*p.NavigationOrder)
	}
	return nil
}

type pageStateResponse struct {
	ID               uuid.UUID          `json:"id"`
	Owner            entity.Ref         `json:"owner"`
	Title            string             `json:"title"`
	Slug             string             `json:"slug"`
	SlugLocked       bool               `json:"slug_locked"`
	IsPublished      bool               `json:"is_published"`
	IsHomepage       bool               `json:"is_homepage"`
	Order            int                `json:"order"`
	MetaTitle        string             `json:"meta_title,omitempty"`
	MetaDescription  string             `json:"meta_description,omitempty"`
	Sections         []sections.Section `json:"sections"`
	AddToNavigation  bool               `json:"add_to_navigation"`
	NavigationLabel  string             `json:"navigation_label,omitempty"`
	NavigationOrder  int                `json:"navigation_order"`
	NavigationItemID *uuid.UUID         `json:"navigation_item_id,omitempty"`
}

func newPageStateResponse(state editor.PageState) pageStateResponse {
	return pageStateResponse{
		ID:               state.ID,
		Owner:            state.Owner,
		Title:            state.Title,
		Slug:             state.Slug,
		SlugLocked:       state.SlugLocked,
		IsPublished:      state.IsPublished,
		IsHomepage:       state.IsHomepage,
		Order:            state.Order,
		MetaTitle:        state.MetaTitle,
		MetaDescription:  state.MetaDescription,
		Sections:         state.Sections,
		AddToNavigation:  state.AddToNavigation,
		NavigationLabel:  state.NavigationLabel,
		NavigationOrder:  state.NavigationOrder,
		NavigationItemID: state.NavigationItem,
	}
}

func (api *AdminAPI) registerPageRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "pages")
	mux.HandleFunc("GET "+root, api.handlePageList)
	mux.HandleFunc("POST "+root, api.handlePageCreate)
	mux.HandleFunc("PUT "+root+"/order", api.handlePageReorder)
	mux.HandleFunc("GET "+root+"/{pageID}", api.handlePageGet)
	mux.HandleFunc("PUT "+root+"/{pageID}", api.handlePageSave)
	mux.HandleFunc("DELETE "+root+"/{pageID}", api.handlePageDelete)
}

func (api *AdminAPI) handlePageList(w http.ResponseWriter, r *http.Request) {
	if api.editor == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	owner, err := ownerFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	view, err := api.editor.Dashboard().Open(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}
	list := view.Pages
	if list == nil {
		list = []*pages.Page{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *AdminAPI) handlePageCreate(w http.ResponseWriter, r *http.Request) {
	if api.editor == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	owner, err := ownerFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload pagePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	ed, err := api.editor.NewPage(owner)
	if err != nil {
		writeError(w, err)
		return
	}
	api.savePage(w, r, ed, payload, http.StatusCreated)
}

func (api *AdminAPI) handlePageGet(w http.ResponseWriter, r *http.Request) {
	if api.editor == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	owner, err := ownerFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	pageID, err := parseUUID(r.PathValue("pageID"))
	if err != nil {
		writeBadRequest(w, "invalid page id")
		return
	}
	ed, err := api.editor.LoadPage(r.Context(), owner, pageID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPageStateResponse(ed.State()))
}

// handlePageSave upserts the page: an unknown id creates a page with that id.
func (api *AdminAPI) handlePageSave(w http.ResponseWriter, r *http.Request) {
	if api.editor == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	owner, err := ownerFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	pageID, err := parseUUID(r.PathValue("pageID"))
	if err != nil {
		writeBadRequest(w, "invalid page id")
		return
	}
	var payload pagePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	ed, err := api.editor.OpenPage(r.Context(), owner, pageID)
	if err != nil {
		writeError(w, err)
		return
	}
	status := http.StatusOK
	if ed.State().IsNew {
		status = http.StatusCreated
	}
	api.savePage(w, r, ed, payload, status)
}

func (api *AdminAPI) savePage(w http.ResponseWriter, r *http.Request, ed *editor.PageEditor, payload pagePayload, status int) {
	if err := payload.apply(ed); err != nil {
		writeError(w, err)
		return
	}
	if err := ed.Save(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, newPageStateResponse(ed.State()))
}

func (api *AdminAPI) handlePageDelete(w http.ResponseWriter, r *http.Request) {
	if api.pageCommands == nil || api.pageCommands.Delete == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	owner, err := ownerFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	pageID, err := parseUUID(r.PathValue("pageID"))
	if err != nil {
		writeBadRequest(w, "invalid page id")
		return
	}
	err = api.pageCommands.Delete.Execute(r.Context(), pagescmd.DeletePageCommand{
		PageID:     pageID,
		EntityType: string(owner.Type),
		EntityID:   owner.ID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *AdminAPI) handlePageReorder(w http.ResponseWriter, r *http.Request) {
	if api.pageCommands == nil || api.pageCommands.Reorder == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	owner, err := ownerFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload orderPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	err = api.pageCommands.Reorder.Execute(r.Context(), pagescmd.ReorderPagesCommand{
		EntityType: string(owner.Type),
		EntityID:   owner.ID,
		PageIDs:    payload.IDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	api.handlePageList(w, r)
}
