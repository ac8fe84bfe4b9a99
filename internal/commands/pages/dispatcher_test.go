package pagescmd

import (
	"context"
	"errors"
	"testing"

	"github.com/countyhub/go-minisite/entity"
	"github.com/countyhub/go-minisite/internal/pages"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	"github.com/google/uuid"
)

// flakyPages fails the first failures saves before delegating.
type flakyPages struct {
	pages.Service
	failures int
	attempts int
}

func (f *flakyPages) Save(ctx context.Context, req pages.SavePageRequest) (*pages.Page, error) {
	f.attempts++
	if f.attempts <= f.failures {
		return nil, errors.New("database is locked")
	}
	return f.Service.Save(ctx, req)
}

func TestDispatchedSaveRetriesOntoSameRecord(t *testing.T) {
	service := &flakyPages{Service: newPageService(), failures: 1}
	handler := NewSavePageHandler(service, nil)

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(1))
	t.Cleanup(sub.Unsubscribe)

	id := uuid.New()
	if err := dispatcher.Dispatch(context.Background(), saveMessage(id, "Menu", "")); err != nil {
		t.Fatalf("dispatch: expected success after retry, got %v", err)
	}
	if service.attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", service.attempts)
	}

	list, err := service.List(context.Background(), diner)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != id || list[0].Slug != "menu" {
		t.Fatalf("expected one page saved under the caller's id, got %+v", list)
	}
}

func TestDispatchedSaveSurfacesExhaustedRetries(t *testing.T) {
	service := &flakyPages{Service: newPageService(), failures: 10}
	handler := NewSavePageHandler(service, nil)

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(2))
	t.Cleanup(sub.Unsubscribe)

	err := dispatcher.Dispatch(context.Background(), saveMessage(uuid.New(), "Specials", ""))
	if err == nil {
		t.Fatal("expected the dispatcher to return the save error")
	}
	if service.attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", service.attempts)
	}

	list, _ := service.List(context.Background(), entity.Restaurant("joes-diner"))
	if len(list) != 0 {
		t.Fatalf("expected nothing saved, got %d pages", len(list))
	}
}
