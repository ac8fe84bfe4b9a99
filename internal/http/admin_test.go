package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/countyhub/go-minisite/internal/pages"
	"github.com/countyhub/go-minisite/internal/photos"
	"github.com/google/uuid"
)

const adminBase = "/admin/api/entities/restaurant/" + dinerID

func TestAdminAPI_PageLifecycle(t *testing.T) {
	mux, _ := setupServer(t)

	createResp := doJSONRequest(t, mux, http.MethodPost, adminBase+"/pages", map[string]any{
		"title":             "Catering & Events",
		"is_published":      true,
		"add_to_navigation": true,
		"sections": []map[string]any{
			{"id": "intro", "type": "text", "content": map[string]any{"body": "Parties of twenty or more."}},
		},
	}, http.StatusCreated)

	var created pageStateResponse
	decodeJSONBody(t, createResp, &created)
	if created.ID == uuid.Nil {
		t.Fatal("expected created page id")
	}
	if created.Slug != "catering-events" {
		t.Fatalf("expected derived slug catering-events got %q", created.Slug)
	}
	if created.NavigationItemID == nil {
		t.Fatal("expected an auto-managed navigation item")
	}
	if len(created.Sections) != 1 || created.Sections[0].ID != "intro" {
		t.Fatalf("expected the posted section, got %+v", created.Sections)
	}

	pagePath := adminBase + "/pages/" + created.ID.String()
	updateResp := doJSONRequest(t, mux, http.MethodPut, pagePath, map[string]any{
		"title":             "Catering",
		"add_to_navigation": false,
	}, http.StatusOK)
	var updated pageStateResponse
	decodeJSONBody(t, updateResp, &updated)
	if updated.Slug != "catering-events" {
		t.Fatalf("expected the slug to stay locked after the first save, got %q", updated.Slug)
	}
	if updated.NavigationItemID != nil {
		t.Fatal("expected the navigation item to be removed")
	}

	dashResp := doJSONRequest(t, mux, http.MethodGet, adminBase+"/dashboard", nil, http.StatusOK)
	var dash dashboardResponse
	decodeJSONBody(t, dashResp, &dash)
	if len(dash.Pages) != 1 || dash.Pages[0].Title != "Catering" {
		t.Fatalf("expected the renamed page on the dashboard, got %+v", dash.Pages)
	}
	if len(dash.Navigation) != 0 {
		t.Fatalf("expected no navigation items, got %d", len(dash.Navigation))
	}

	doJSONRequest(t, mux, http.MethodDelete, pagePath, nil, http.StatusNoContent)
	doJSONRequest(t, mux, http.MethodGet, pagePath, nil, http.StatusNotFound)
}

func TestAdminAPI_PageValidationAndConflicts(t *testing.T) {
	mux, _ := setupServer(t)

	resp := doJSONRequest(t, mux, http.MethodPost, adminBase+"/pages", map[string]any{"title": "  "}, http.StatusUnprocessableEntity)
	var failure map[string]any
	decodeJSONBody(t, resp, &failure)
	if failure["error"] != "validation_failed" {
		t.Fatalf("expected validation_failed got %v", failure["error"])
	}

	doJSONRequest(t, mux, http.MethodPost, adminBase+"/pages", map[string]any{"title": "Menu"}, http.StatusCreated)
	doJSONRequest(t, mux, http.MethodPost, adminBase+"/pages", map[string]any{"title": "Menu"}, http.StatusConflict)

	doJSONRequest(t, mux, http.MethodGet, "/admin/api/entities/spaceship/abc/pages", nil, http.StatusBadRequest)
	doJSONRequest(t, mux, http.MethodGet, adminBase+"/pages/not-a-uuid", nil, http.StatusBadRequest)
}

func TestAdminAPI_PutCreatesPageWithClientID(t *testing.T) {
	mux, _ := setupServer(t)

	id := uuid.New()
	resp := doJSONRequest(t, mux, http.MethodPut, adminBase+"/pages/"+id.String(), map[string]any{"title": "Hours"}, http.StatusCreated)
	var state pageStateResponse
	decodeJSONBody(t, resp, &state)
	if state.ID != id {
		t.Fatalf("expected page id %s got %s", id, state.ID)
	}
	if state.IsPublished {
		t.Fatal("expected new pages to start unpublished")
	}
}

func TestAdminAPI_NavigationTree(t *testing.T) {
	mux, _ := setupServer(t)

	pageResp := doJSONRequest(t, mux, http.MethodPost, adminBase+"/pages", map[string]any{"title": "Menu", "is_published": true}, http.StatusCreated)
	var page pageStateResponse
	decodeJSONBody(t, pageResp, &page)

	parentResp := doJSONRequest(t, mux, http.MethodPost, adminBase+"/navigation", map[string]any{
		"label":        "Visit",
		"link_type":    "external",
		"external_url": "https://maps.test/joes",
	}, http.StatusCreated)
	var parent navigationStateResponse
	decodeJSONBody(t, parentResp, &parent)

	childResp := doJSONRequest(t, mux, http.MethodPost, adminBase+"/navigation", map[string]any{
		"label":     "Food",
		"link_type": "page",
		"page_id":   page.ID.String(),
		"parent_id": parent.ID.String(),
	}, http.StatusCreated)
	var child navigationStateResponse
	decodeJSONBody(t, childResp, &child)
	if child.ParentID == nil || *child.ParentID != parent.ID {
		t.Fatalf("expected child to nest under %s", parent.ID)
	}

	doJSONRequest(t, mux, http.MethodPost, adminBase+"/navigation", map[string]any{
		"label":     "Elsewhere",
		"link_type": "page",
		"page_id":   uuid.NewString(),
	}, http.StatusUnprocessableEntity)

	dashResp := doJSONRequest(t, mux, http.MethodGet, adminBase+"/dashboard", nil, http.StatusOK)
	var dash dashboardResponse
	decodeJSONBody(t, dashResp, &dash)
	if len(dash.Navigation) != 1 || len(dash.Navigation[0].Children) != 1 {
		t.Fatalf("expected one parent with one child, got %+v", dash.Navigation)
	}

	updateResp := doJSONRequest(t, mux, http.MethodPut, adminBase+"/navigation/"+child.ID.String(), map[string]any{
		"top_level":  true,
		"is_visible": false,
	}, http.StatusOK)
	var moved navigationStateResponse
	decodeJSONBody(t, updateResp, &moved)
	if moved.ParentID != nil || moved.IsVisible {
		t.Fatalf("expected a hidden top-level item, got %+v", moved)
	}

	doJSONRequest(t, mux, http.MethodDelete, adminBase+"/navigation/"+parent.ID.String(), nil, http.StatusNoContent)
	doJSONRequest(t, mux, http.MethodGet, adminBase+"/navigation/"+parent.ID.String(), nil, http.StatusNotFound)
}

func TestAdminAPI_PhotoLifecycle(t *testing.T) {
	mux, _ := setupServer(t)

	var ids []uuid.UUID
	for _, url := range []string{"https://cdn.test/a.jpg", "https://cdn.test/b.jpg"} {
		resp := doJSONRequest(t, mux, http.MethodPost, adminBase+"/photos", map[string]any{"url": url}, http.StatusCreated)
		var photo photos.Photo
		decodeJSONBody(t, resp, &photo)
		ids = append(ids, photo.ID)
	}

	doJSONRequest(t, mux, http.MethodPost, adminBase+"/photos", map[string]any{"url": ""}, http.StatusUnprocessableEntity)

	reorderResp := doJSONRequest(t, mux, http.MethodPut, adminBase+"/photos/order", map[string]any{
		"ids": []string{ids[1].String(), ids[0].String()},
	}, http.StatusOK)
	var list []*photos.Photo
	decodeJSONBody(t, reorderResp, &list)
	if len(list) != 2 || list[0].ID != ids[1] {
		t.Fatalf("expected reordered photos, got %+v", list)
	}

	doJSONRequest(t, mux, http.MethodDelete, adminBase+"/photos/"+ids[0].String(), nil, http.StatusNoContent)
	listResp := doJSONRequest(t, mux, http.MethodGet, adminBase+"/photos", nil, http.StatusOK)
	decodeJSONBody(t, listResp, &list)
	if len(list) != 1 {
		t.Fatalf("expected one photo after delete, got %d", len(list))
	}
}

func TestMapErrorFallsBackToInternal(t *testing.T) {
	status, payload := mapError(pages.ErrSlugExists)
	if status != http.StatusConflict || payload.Error != "conflict" {
		t.Fatalf("expected conflict, got %d %+v", status, payload)
	}
	status, payload = mapError(bytes.ErrTooLarge)
	if status != http.StatusInternalServerError || payload.Error != "internal_error" {
		t.Fatalf("expected internal error, got %d %+v", status, payload)
	}
}

func doJSONRequest(t *testing.T, mux *http.ServeMux, method, path string, body any, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("%s %s: expected status %d got %d (%s)", method, path, wantStatus, rec.Code, rec.Body.String())
	}
	return rec
}

func decodeJSONBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
