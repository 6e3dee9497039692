package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AzielCF/az-presence/infrastructure/presencestore"
	"github.com/AzielCF/az-presence/usecase"
)

func TestTypingEndpoints(t *testing.T) {
	app, db := newTestApp(t)
	service := usecase.NewTypingService(presencestore.NewTypingGormRepository(db), nil)
	InitRestTyping(app, service)

	resp := postJSON(t, app, "/typing/mark", map[string]any{
		"channel": "general", "member": "alice",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}

	getResp, err := app.Test(httptest.NewRequest(http.MethodGet, "/typing/general", nil))
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	envelope := decodeEnvelope(t, getResp)
	results, ok := envelope["results"].([]any)
	if !ok || len(results) != 1 || results[0] != "alice" {
		t.Fatalf("expected [alice], got %v", envelope["results"])
	}

	resp = postJSON(t, app, "/typing/clear", map[string]any{
		"channel": "general", "member": "alice",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}

	getResp, err = app.Test(httptest.NewRequest(http.MethodGet, "/typing/general", nil))
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	envelope = decodeEnvelope(t, getResp)
	if results, ok := envelope["results"].([]any); ok && len(results) != 0 {
		t.Fatalf("expected empty list after clear, got %v", envelope["results"])
	}
}

func TestTypingMarkValidation(t *testing.T) {
	app, db := newTestApp(t)
	service := usecase.NewTypingService(presencestore.NewTypingGormRepository(db), nil)
	InitRestTyping(app, service)

	resp := postJSON(t, app, "/typing/mark", map[string]any{"channel": "general"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
