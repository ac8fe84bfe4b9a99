package listings_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/countyhub/go-minisite/listings"
)

func TestInlinePhotosAcceptStringsAndObjects(t *testing.T) {
	var photos []listings.InlinePhoto
	if err := json.Unmarshal([]byte(`["b.jpg", {"url":"c.jpg","caption":"C"}]`), &photos); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []listings.InlinePhoto{{URL: "b.jpg"}, {URL: "c.jpg", Caption: "C"}}
	if !reflect.DeepEqual(photos, want) {
		t.Fatalf("unexpected photos %+v", photos)
	}

	encoded, err := json.Marshal(photos)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(encoded) != `[{"url":"b.jpg"},{"url":"c.jpg","caption":"C"}]` {
		t.Fatalf("unexpected encoding %s", encoded)
	}
}

func TestInlinePhotoRejectsNumbers(t *testing.T) {
	var photo listings.InlinePhoto
	if err := json.Unmarshal([]byte(`42`), &photo); err == nil {
		t.Fatalf("expected error for numeric photo entry")
	}
}
