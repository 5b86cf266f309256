// Package identity derives a participant identity for citizen actions.
// A participant is either anonymous (client-generated session token only)
// or authenticated (user id attached alongside the token). Storage
// uniqueness is always keyed on the session token, never the user id, so
// the token must be stable for the lifetime of a browser session.
package identity

import "errors"

// MinSessionIDLength matches the client, which generates a random UUID
// per browser tab.
const MinSessionIDLength = 10

var ErrInvalidSession = errors.New("invalid session")

// Participant identifies who performed an action. UserID is nil for
// anonymous participants.
type Participant struct {
	SessionID string
	UserID    *string
}

// Authenticated reports whether a logged-in user id is attached.
func (p Participant) Authenticated() bool {
	return p.UserID != nil && *p.UserID != ""
}

// Key returns the identity key used when grouping stored responses:
// the user id when present, otherwise the session token. This mirrors
// how the admin views group respondents.
func (p Participant) Key() string {
	if p.Authenticated() {
		return *p.UserID
	}
	return p.SessionID
}

// Resolve validates the session token and attaches the optional user id.
// It must be called before any storage access; a missing or too-short
// token rejects the action outright.
func Resolve(sessionID string, userID *string) (Participant, error) {
	if len(sessionID) < MinSessionIDLength {
		return Participant{}, ErrInvalidSession
	}
	p := Participant{SessionID: sessionID}
	if userID != nil && *userID != "" {
		p.UserID = userID
	}
	return p, nil
}
