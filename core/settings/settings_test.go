package settings

import (
	"context"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	path := filepath.Join(t.TempDir(), "settings.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewService(db)
}

func TestDynamicSettingsEmptyByDefault(t *testing.T) {
	svc := newTestService(t)

	ds, err := svc.GetDynamicSettings(context.Background())
	if err != nil {
		t.Fatalf("GetDynamicSettings() error: %v", err)
	}
	if ds.PresenceStaleTimeoutMs != nil || ds.TypingTTLMs != nil {
		t.Fatalf("expected empty settings, got %+v", ds)
	}
}

func TestDynamicSettingsRoundtrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.SetPresenceStaleTimeout(ctx, 45000); err != nil {
		t.Fatalf("SetPresenceStaleTimeout() error: %v", err)
	}
	if err := svc.SetPresenceMaxAgeMultiplier(ctx, 3); err != nil {
		t.Fatalf("SetPresenceMaxAgeMultiplier() error: %v", err)
	}
	if err := svc.SetTypingTTL(ctx, 8000); err != nil {
		t.Fatalf("SetTypingTTL() error: %v", err)
	}

	ds, err := svc.GetDynamicSettings(ctx)
	if err != nil {
		t.Fatalf("GetDynamicSettings() error: %v", err)
	}
	if ds.PresenceStaleTimeoutMs == nil || *ds.PresenceStaleTimeoutMs != 45000 {
		t.Fatalf("unexpected stale timeout: %+v", ds.PresenceStaleTimeoutMs)
	}
	if ds.PresenceMaxAgeMultiplier == nil || *ds.PresenceMaxAgeMultiplier != 3 {
		t.Fatalf("unexpected multiplier: %+v", ds.PresenceMaxAgeMultiplier)
	}
	if ds.TypingTTLMs == nil || *ds.TypingTTLMs != 8000 {
		t.Fatalf("unexpected typing ttl: %+v", ds.TypingTTLMs)
	}
}

func TestDynamicSettingsOverwrite(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.SetTypingTTL(ctx, 8000); err != nil {
		t.Fatalf("SetTypingTTL() error: %v", err)
	}
	if err := svc.SetTypingTTL(ctx, 2000); err != nil {
		t.Fatalf("second SetTypingTTL() error: %v", err)
	}

	ds, err := svc.GetDynamicSettings(ctx)
	if err != nil {
		t.Fatalf("GetDynamicSettings() error: %v", err)
	}
	if ds.TypingTTLMs == nil || *ds.TypingTTLMs != 2000 {
		t.Fatalf("expected latest value 2000, got %+v", ds.TypingTTLMs)
	}
}
