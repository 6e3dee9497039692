package typing

import (
	"context"
	"time"

	"github.com/AzielCF/az-presence/domains/common"
)

type MarkRequest struct {
	Channel string `json:"channel"`
	Member  string `json:"member"`
}

type ClearRequest struct {
	Channel string `json:"channel"`
	Member  string `json:"member"`
}

type ITypingUsecase interface {
	Mark(ctx context.Context, request MarkRequest) error
	// Clear is idempotent (e.g. fired on message send).
	Clear(ctx context.Context, request ClearRequest) error
	// List returns members whose last keystroke is within ttl.
	// ttl <= 0 falls back to the configured default.
	List(ctx context.Context, channel string, ttl time.Duration) ([]string, error)
	SetEventSink(sink common.EventSink)
}

// ITypingRepository stores one row per (channel, member). Expiry is computed
// lazily at read time; there is no scheduled sweep.
type ITypingRepository interface {
	Upsert(ctx context.Context, channel, member string, at time.Time) error
	Delete(ctx context.Context, channel, member string) error
	ListSince(ctx context.Context, channel string, cutoff time.Time) ([]string, error)
	// DeleteBefore opportunistically drops expired rows during reads.
	DeleteBefore(ctx context.Context, channel string, cutoff time.Time) error
}
