package common

// Event codes published to the websocket hub after a mutation commits.
// Fan-out is strictly after the store write; a slow or absent consumer never
// blocks or fails the mutation.
const (
	EventPresenceBeat   = "PRESENCE_BEAT"
	EventPresenceLeave  = "PRESENCE_LEAVE"
	EventPresenceStatus = "PRESENCE_STATUS"
	EventTypingMark     = "TYPING_MARK"
	EventTypingClear    = "TYPING_CLEAR"
	EventUnreadBump     = "UNREAD_BUMP"
	EventUnreadRead     = "UNREAD_READ"
)

// EventSink receives domain events for outbound fan-out (websocket, pub/sub).
type EventSink func(code string, message string, result any)
