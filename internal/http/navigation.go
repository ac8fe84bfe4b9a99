package http

import (
	"net/http"

	"github.com/countyhub/go-minisite/entity"
	"github.com/countyhub/go-minisite/internal/editor"
	"github.com/countyhub/go-minisite/internal/navigation"
	"github.com/google/uuid"
)

type navigationPayload struct {
	Label       *string    `json:"label,omitempty"`
	LinkType    *string    `json:"link_type,omitempty"`
	PageID      *uuid.UUID `json:"page_id,omitempty"`
	ExternalURL *string    `json:"external_url,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	// TopLevel moves an existing child back to the top level.
	TopLevel  bool  `json:"top_level,omitempty"`
	Order     *int  `json:"order,omitempty"`
	IsVisible *bool `json:"is_visible,omitempty"`
}

// apply sets the link type before its target so SetPage validates against
// the right kind of link.
func (p navigationPayload) apply(ed *editor.NavigationEditor) error {
	if p.Label != nil {
		ed.SetLabel(*p.Label)
	}
	if p.LinkType != nil {
		if err := ed.SetLinkType(navigation.LinkType(*p.LinkType)); err != nil {
			return err
		}
	}
	if p.PageID != nil {
		if err := ed.SetPage(*p.PageID); err != nil {
			return err
		}
	}
	if p.ExternalURL != nil {
		ed.SetExternalURL(*p.ExternalURL)
	}
	switch {
	case p.TopLevel:
		if err := ed.SetParent(nil); err != nil {
			return err
		}
	case p.ParentID != nil:
		if err := ed.SetParent(p.ParentID); err != nil {
			return err
		}
	}
	if p.Order != nil {
		ed.SetOrder(*p.Order)
	}
	if p.IsVisible != nil {
		ed.SetVisible(*p.IsVisible)
	}
	return nil
}

type navigationStateResponse struct {
	ID                   uuid.UUID           `json:"id"`
	Owner                entity.Ref          `json:"owner"`
	Label                string              `json:"label"`
	LinkType             navigation.LinkType `json:"link_type"`
	PageID               *uuid.UUID          `json:"page_id,omitempty"`
	ExternalURL          string              `json:"external_url,omitempty"`
	ParentID             *uuid.UUID          `json:"parent_id,omitempty"`
	Order                int                 `json:"order"`
	IsVisible            bool                `json:"is_visible"`
	AutoManagedForPageID *uuid.UUID          `json:"auto_managed_for_page_id,omitempty"`
}

func newNavigationStateResponse(state editor.NavigationState) navigationStateResponse {
	return navigationStateResponse{
		ID:                   state.ID,
		Owner:                state.Owner,
		Label:                state.Label,
		LinkType:             state.LinkType,
		PageID:               state.PageID,
		ExternalURL:          state.ExternalURL,
		ParentID:             state.ParentID,
		Order:                state.Order,
		IsVisible:            state.IsVisible,
		AutoManagedForPageID: state.AutoManagedForPageID,
	}
}

func (api *AdminAPI) registerNavigationRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "navigation")
	mux.HandleFunc("POST "+root, api.handleNavigationCreate)
	mux.HandleFunc("GET "+root+"/{itemID}", api.handleNavigationGet)
	mux.HandleFunc("PUT "+root+"/{itemID}", api.handleNavigationUpdate)
	mux.HandleFunc("DELETE "+root+"/{itemID}", api.handleNavigationDelete)
}

func (api *AdminAPI) handleNavigationCreate(w http.ResponseWriter, r *http.Request) {
	if api.editor == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	owner, err := ownerFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload navigationPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	ed, err := api.editor.NewNavigation(r.Context(), owner, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	api.saveNavigation(w, r, ed, payload, http.StatusCreated)
}

func (api *AdminAPI) handleNavigationGet(w http.ResponseWriter, r *http.Request) {
	ed, ok := api.loadNavigation(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newNavigationStateResponse(ed.State()))
}

func (api *AdminAPI) handleNavigationUpdate(w http.ResponseWriter, r *http.Request) {
	ed, ok := api.loadNavigation(w, r)
	if !ok {
		return
	}
	var payload navigationPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	api.saveNavigation(w, r, ed, payload, http.StatusOK)
}

func (api *AdminAPI) loadNavigation(w http.ResponseWriter, r *http.Request) (*editor.NavigationEditor, bool) {
	if api.editor == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return nil, false
	}
	owner, err := ownerFromPath(r)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	itemID, err := parseUUID(r.PathValue("itemID"))
	if err != nil {
		writeBadRequest(w, "invalid navigation item id")
		return nil, false
	}
	ed, err := api.editor.LoadNavigation(r.Context(), owner, itemID)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return ed, true
}

func (api *AdminAPI) saveNavigation(w http.ResponseWriter, r *http.Request, ed *editor.NavigationEditor, payload navigationPayload, status int) {
	if err := payload.apply(ed); err != nil {
		writeError(w, err)
		return
	}
	if err := ed.Save(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, newNavigationStateResponse(ed.State()))
}

// handleNavigationDelete removes the item and its children.
func (api *AdminAPI) handleNavigationDelete(w http.ResponseWriter, r *http.Request) {
	if api.editor == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	owner, err := ownerFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	itemID, err := parseUUID(r.PathValue("itemID"))
	if err != nil {
		writeBadRequest(w, "invalid navigation item id")
		return
	}
	if err := api.editor.Dashboard().DeleteNavigation(r.Context(), owner, itemID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
