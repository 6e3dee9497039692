package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/AzielCF/az-presence/infrastructure/presencestore"
	"github.com/AzielCF/az-presence/ui/rest/middleware"
	"github.com/AzielCF/az-presence/usecase"
	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "presence.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := presencestore.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	app := fiber.New()
	app.Use(middleware.Recovery())
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var envelope map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return envelope
}

func TestHeartbeatEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	service := usecase.NewPresenceService(
		presencestore.NewHeartbeatGormRepository(db),
		presencestore.NewStatusGormRepository(db),
		nil,
	)
	InitRestPresence(app, service)

	resp := postJSON(t, app, "/presence/heartbeat", map[string]any{
		"room": "room-1", "user": "alice", "session": "s1", "interval_ms": 30000,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	envelope := decodeEnvelope(t, resp)
	if envelope["code"] != "SUCCESS" {
		t.Fatalf("unexpected code %v", envelope["code"])
	}

	getReq := httptest.NewRequest(http.MethodGet, "/presence/rooms/room-1/active", nil)
	getResp, err := app.Test(getReq)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	if getResp.StatusCode != http.StatusOK {
		getResp.Body.Close()
		t.Fatalf("unexpected status %d", getResp.StatusCode)
	}
	listEnvelope := decodeEnvelope(t, getResp)
	results, ok := listEnvelope["results"].([]any)
	if !ok || len(results) != 1 {
		t.Fatalf("expected one active session, got %v", listEnvelope["results"])
	}
}

func TestHeartbeatEndpointRejectsMissingInterval(t *testing.T) {
	app, db := newTestApp(t)
	service := usecase.NewPresenceService(
		presencestore.NewHeartbeatGormRepository(db),
		presencestore.NewStatusGormRepository(db),
		nil,
	)
	InitRestPresence(app, service)

	resp := postJSON(t, app, "/presence/heartbeat", map[string]any{
		"room": "room-1", "user": "alice", "session": "s1",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	envelope := decodeEnvelope(t, resp)
	if envelope["code"] != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %v", envelope["code"])
	}
}

func TestSetStatusEndpointRejectsBadEnum(t *testing.T) {
	app, db := newTestApp(t)
	service := usecase.NewPresenceService(
		presencestore.NewHeartbeatGormRepository(db),
		presencestore.NewStatusGormRepository(db),
		nil,
	)
	InitRestPresence(app, service)

	resp := postJSON(t, app, "/presence/status", map[string]any{
		"user": "alice", "status": "invisible",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestDerivePresenceEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	service := usecase.NewPresenceService(
		presencestore.NewHeartbeatGormRepository(db),
		presencestore.NewStatusGormRepository(db),
		nil,
	)
	InitRestPresence(app, service)

	resp := postJSON(t, app, "/presence/status", map[string]any{
		"user": "alice", "status": "dnd", "custom_message": "focus time",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}

	getReq := httptest.NewRequest(http.MethodGet, "/presence/rooms/room-1/users/alice", nil)
	getResp, err := app.Test(getReq)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	envelope := decodeEnvelope(t, getResp)
	results, ok := envelope["results"].(map[string]any)
	if !ok {
		t.Fatalf("expected results object, got %v", envelope["results"])
	}
	if results["status"] != "dnd" {
		t.Fatalf("expected dnd, got %v", results["status"])
	}
}
