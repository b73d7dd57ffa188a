// Package session owns the durable session record: its encrypted persistence,
// the canonical active/inactive signal and the edge-triggered event feed.
package session

import "github.com/devconsole/go-auth-sdk/authmodel"

// SchemaVersion is written into every persisted record so future layout
// changes can be migrated rather than silently misread.
const SchemaVersion = 1

// SessionData is the single unit of persisted state: the federation
// authorization artifact plus the tokens from both trust domains. A record
// with an empty AuthorizationCode is invalid and treated as expired.
type SessionData struct {
	Version           int                    `json:"version"`
	AuthorizationCode string                 `json:"authorization_code"`
	OneTokens         authmodel.OneTokenData `json:"one_tokens"`
	TwoTokens         authmodel.TwoTokenData `json:"two_tokens"`
}

// EventKind discriminates session events.
type EventKind int

const (
	// EventSaved is published after a record has been written through.
	EventSaved EventKind = iota
	// EventCleared is published after the record has been removed.
	EventCleared
	// EventExpired is published when an expiry check finds the record stale.
	EventExpired
)

// Event is an edge-triggered session notification. Session is set for
// EventSaved only.
type Event struct {
	Kind    EventKind
	Session *SessionData
}
