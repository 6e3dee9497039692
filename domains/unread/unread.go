package unread

import (
	"context"

	"github.com/AzielCF/az-presence/domains/common"
)

// Counter is the per (channel, member) unread state. The watermark
// (LastSeenMessage/LastSeenSeq) only ever moves forward.
type Counter struct {
	Channel         string `json:"channel"`
	Member          string `json:"member"`
	Count           int64  `json:"count"`
	LastSeenMessage string `json:"last_seen_message,omitempty"`
	LastSeenSeq     int64  `json:"last_seen_seq"`
}

type MessageInsertedRequest struct {
	Channel      string   `json:"channel"`
	AuthorMember string   `json:"author_member"`
	MemberIDs    []string `json:"member_ids"`
	MessageID    string   `json:"message_id"`
	// MessageSeq is the channel-monotonic sequence of the inserted message.
	MessageSeq int64 `json:"message_seq"`
}

type MarkReadRequest struct {
	Channel     string `json:"channel"`
	Member      string `json:"member"`
	UptoMessage string `json:"upto_message"`
	UptoSeq     int64  `json:"upto_seq"`
}

type IUnreadUsecase interface {
	// OnMessageInserted increments every member's counter except the
	// author's, atomically per row. Fan-out to consumers happens only
	// after all increments committed.
	OnMessageInserted(ctx context.Context, request MessageInsertedRequest) error
	// MarkRead resets the counter and advances the watermark. A request
	// older than the recorded watermark is a silent no-op.
	MarkRead(ctx context.Context, request MarkReadRequest) error
	Get(ctx context.Context, channel, member string) (Counter, error)
	SetEventSink(sink common.EventSink)
}

type IUnreadRepository interface {
	// Increment atomically adds one to the row, creating it when absent.
	// The increment must never be lost under concurrent inserts.
	Increment(ctx context.Context, channel, member, messageID string, messageSeq int64) error
	// MarkRead returns false when the watermark guard rejected the update.
	MarkRead(ctx context.Context, channel, member, uptoMessage string, uptoSeq int64) (bool, error)
	// Get returns nil when the member has no counter row yet.
	Get(ctx context.Context, channel, member string) (*Counter, error)
}
