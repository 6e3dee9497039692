package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AzielCF/az-presence/infrastructure/presencestore"
	"github.com/AzielCF/az-presence/usecase"
)

func TestUnreadEndpoints(t *testing.T) {
	app, db := newTestApp(t)
	service := usecase.NewUnreadService(presencestore.NewUnreadGormRepository(db))
	InitRestUnread(app, service)

	resp := postJSON(t, app, "/unread/message-inserted", map[string]any{
		"channel":       "general",
		"author_member": "alice",
		"member_ids":    []string{"alice", "bob"},
		"message_id":    "m1",
		"message_seq":   1,
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}

	getReq := httptest.NewRequest(http.MethodGet, "/unread/general/bob", nil)
	getResp, err := app.Test(getReq)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	envelope := decodeEnvelope(t, getResp)
	results, ok := envelope["results"].(map[string]any)
	if !ok {
		t.Fatalf("expected results object, got %v", envelope["results"])
	}
	if results["count"] != float64(1) {
		t.Fatalf("expected count 1, got %v", results["count"])
	}

	resp = postJSON(t, app, "/unread/mark-read", map[string]any{
		"channel": "general", "member": "bob", "upto_message": "m1", "upto_seq": 1,
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}

	getResp, err = app.Test(httptest.NewRequest(http.MethodGet, "/unread/general/bob", nil))
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	envelope = decodeEnvelope(t, getResp)
	results = envelope["results"].(map[string]any)
	if results["count"] != float64(0) {
		t.Fatalf("expected count 0 after mark-read, got %v", results["count"])
	}
}

func TestUnreadMessageInsertedValidation(t *testing.T) {
	app, db := newTestApp(t)
	service := usecase.NewUnreadService(presencestore.NewUnreadGormRepository(db))
	InitRestUnread(app, service)

	resp := postJSON(t, app, "/unread/message-inserted", map[string]any{
		"channel": "general",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
