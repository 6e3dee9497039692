package presence

import (
	"context"
	"time"

	"github.com/AzielCF/az-presence/domains/common"
)

// Status is the user-facing presence state. Explicit non-online overrides
// always win over heartbeat-derived liveness.
type Status string

const (
	StatusOnline  Status = "online"
	StatusAway    Status = "away"
	StatusBusy    Status = "busy"
	StatusDnd     Status = "dnd"
	StatusOffline Status = "offline"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOnline, StatusAway, StatusBusy, StatusDnd, StatusOffline:
		return true
	}
	return false
}

// Statuses lists the accepted enum values, for validation messages.
func Statuses() []any {
	return []any{StatusOnline, StatusAway, StatusBusy, StatusDnd, StatusOffline}
}

const MaxCustomMessageLength = 255

type HeartbeatRequest struct {
	Room       string `json:"room"`
	User       string `json:"user"`
	Session    string `json:"session"`
	IntervalMs int64  `json:"interval_ms"`
	// SentAtMs is the optional client send time (unix ms). When set it is
	// used for the monotonic guard against reordered heartbeats; zero
	// means "use server time".
	SentAtMs int64 `json:"sent_at_ms,omitempty"`
}

type LeaveRequest struct {
	Room    string `json:"room"`
	User    string `json:"user"`
	Session string `json:"session"`
}

type SetStatusRequest struct {
	User          string `json:"user"`
	Status        Status `json:"status"`
	CustomMessage string `json:"custom_message,omitempty"`
	ActiveChannel string `json:"active_channel,omitempty"`
}

// StatusOverride is the per-user declared status. One row per user,
// upsert semantics.
type StatusOverride struct {
	User          string    `json:"user"`
	Status        Status    `json:"status"`
	CustomMessage string    `json:"custom_message,omitempty"`
	ActiveChannel string    `json:"active_channel,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
	LastSeenAt    time.Time `json:"last_seen_at"`
}

type ActiveSession struct {
	User    string `json:"user"`
	Session string `json:"session"`
}

// Presence is the derived, read-time state of a user in a room.
type Presence struct {
	Status       Status    `json:"status"`
	LastActivity time.Time `json:"last_activity"`
}

type IPresenceUsecase interface {
	Beat(ctx context.Context, request HeartbeatRequest) error
	Leave(ctx context.Context, request LeaveRequest) error
	ListActive(ctx context.Context, room string, maxAgeMultiplier int) ([]ActiveSession, error)
	SetStatus(ctx context.Context, request SetStatusRequest) (StatusOverride, error)
	GetStatus(ctx context.Context, user string) (StatusOverride, error)
	DerivePresence(ctx context.Context, user, room string) (Presence, error)
	SetEventSink(sink common.EventSink)
	StartBackgroundCleanup(ctx context.Context)
}

// IHeartbeatRepository is the durable (room, user, session) -> last heartbeat
// mapping. All writes must be safe under arbitrary interleaving.
type IHeartbeatRepository interface {
	// Upsert bumps last_heartbeat to at. A write that would move the
	// timestamp backwards is ignored and reported as accepted=false.
	Upsert(ctx context.Context, room, user, session string, intervalMs int64, at time.Time) (accepted bool, err error)
	// Delete is idempotent; removing an absent row is not an error.
	Delete(ctx context.Context, room, user, session string) error
	ListActive(ctx context.Context, room string, now time.Time, maxAgeMultiplier int) ([]ActiveSession, error)
	// HasActiveSession reports whether the user has any fresh session in the room.
	HasActiveSession(ctx context.Context, room, user string, now time.Time, maxAgeMultiplier int) (bool, error)
	// DeleteStale removes rows older than multiplier * interval and returns
	// the number of rows swept.
	DeleteStale(ctx context.Context, now time.Time, maxAgeMultiplier int) (int64, error)
}

type IStatusRepository interface {
	Upsert(ctx context.Context, override StatusOverride) error
	// TouchLastSeen bumps last_seen_at only, creating an implicit online
	// row when the user has no override yet.
	TouchLastSeen(ctx context.Context, user string, at time.Time) error
	// Get returns nil when the user has no override.
	Get(ctx context.Context, user string) (*StatusOverride, error)
}
