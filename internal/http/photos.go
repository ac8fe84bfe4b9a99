package http

import (
	"net/http"

	photoscmd "github.com/countyhub/go-minisite/internal/commands/photos"
	"github.com/countyhub/go-minisite/internal/photos"
	"github.com/google/uuid"
)

type photoPayload struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
	Order   *int   `json:"order,omitempty"`
}

func (api *AdminAPI) registerPhotoRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "photos")
	mux.HandleFunc("GET "+root, api.handlePhotoList)
	mux.HandleFunc("POST "+root, api.handlePhotoAdd)
	mux.HandleFunc("PUT "+root+"/order", api.handlePhotoReorder)
	mux.HandleFunc("DELETE "+root+"/{photoID}", api.handlePhotoDelete)
}

func (api *AdminAPI) photosReady(w http.ResponseWriter) bool {
	if api.photos == nil || api.photoCommands == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return false
	}
	return true
}

func (api *AdminAPI) handlePhotoList(w http.ResponseWriter, r *http.Request) {
	if !api.photosReady(w) {
		return
	}
	owner, err := ownerFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	list, err := api.photos.List(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []*photos.Photo{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *AdminAPI) handlePhotoAdd(w http.ResponseWriter, r *http.Request) {
	if !api.photosReady(w) {
		return
	}
	owner, err := ownerFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload photoPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	photoID := uuid.New()
	err = api.photoCommands.Add.Execute(r.Context(), photoscmd.AddPhotoCommand{
		PhotoID:    photoID,
		EntityType: string(owner.Type),
		EntityID:   owner.ID,
		URL:        payload.URL,
		Caption:    payload.Caption,
		Order:      payload.Order,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	photo, err := api.photos.Get(r.Context(), owner, photoID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, photo)
}

func (api *AdminAPI) handlePhotoDelete(w http.ResponseWriter, r *http.Request) {
	if !api.photosReady(w) {
		return
	}
	owner, err := ownerFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	photoID, err := parseUUID(r.PathValue("photoID"))
	if err != nil {
		writeBadRequest(w, "invalid photo id")
		return
	}
	err = api.photoCommands.Delete.Execute(r.Context(), photoscmd.DeletePhotoCommand{
		PhotoID:    photoID,
		EntityType: string(owner.Type),
		EntityID:   owner.ID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *AdminAPI) handlePhotoReorder(w http.ResponseWriter, r *http.Request) {
	if !api.photosReady(w) {
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
	err = api.photoCommands.Reorder.Execute(r.Context(), photoscmd.ReorderPhotosCommand{
		EntityType: string(owner.Type),
		EntityID:   owner.ID,
		PhotoIDs:   payload.IDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	api.handlePhotoList(w, r)
}
