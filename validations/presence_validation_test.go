package validations

import (
	"context"
	"strings"
	"testing"

	domainPresence "github.com/AzielCF/az-presence/domains/presence"
)

func TestValidateHeartbeat(t *testing.T) {
	ctx := context.Background()

	valid := domainPresence.HeartbeatRequest{
		Room: "room-1", User: "alice", Session: "s1", IntervalMs: 30000,
	}
	if err := ValidateHeartbeat(ctx, valid); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	missing := valid
	missing.Session = ""
	if err := ValidateHeartbeat(ctx, missing); err == nil {
		t.Fatal("expected error for missing session")
	}

	badInterval := valid
	badInterval.IntervalMs = 0
	if err := ValidateHeartbeat(ctx, badInterval); err == nil {
		t.Fatal("expected error for zero interval")
	}
}

func TestValidateSetStatus(t *testing.T) {
	ctx := context.Background()

	valid := domainPresence.SetStatusRequest{User: "alice", Status: domainPresence.StatusBusy}
	if err := ValidateSetStatus(ctx, valid); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	badEnum := valid
	badEnum.Status = domainPresence.Status("invisible")
	if err := ValidateSetStatus(ctx, badEnum); err == nil {
		t.Fatal("expected error for unknown status")
	}

	longMessage := valid
	longMessage.CustomMessage = strings.Repeat("x", domainPresence.MaxCustomMessageLength+1)
	if err := ValidateSetStatus(ctx, longMessage); err == nil {
		t.Fatal("expected error for oversized custom message")
	}

	atLimit := valid
	atLimit.CustomMessage = strings.Repeat("x", domainPresence.MaxCustomMessageLength)
	if err := ValidateSetStatus(ctx, atLimit); err != nil {
		t.Fatalf("message at the limit rejected: %v", err)
	}
}
