package session

import (
	"github.com/careerlink-app/careerlink-backend/internal/identity"
	"github.com/careerlink-app/careerlink-backend/pkg/enums"
)

// State is the access-control state derived from the identity provider and
// the profile record.
type State string

const (
	// StateInitializing holds before the identity provider's first report.
	StateInitializing State = "initializing"
	// StateAnonymous means no signed-in identity.
	StateAnonymous State = "anonymous"
	// StateIncompleteProfile means signed in but onboarding is unfinished.
	StateIncompleteProfile State = "authenticated_incomplete_profile"
	// StateComplete means signed in with a finished profile.
	StateComplete State = "authenticated_complete"
)

// Snapshot is the session value the authorize table evaluates. Identity is
// nil except in the two authenticated states.
type Snapshot struct {
	State    State              `json:"state"`
	Identity *identity.Identity `json:"identity,omitempty"`
}

// SnapshotFor derives the state for a reported identity. A nil identity maps
// to Anonymous; incomplete or role-less identities map to IncompleteProfile.
func SnapshotFor(ident *identity.Identity) Snapshot {
	if ident == nil {
		return Snapshot{State: StateAnonymous}
	}
	if !ident.ProfileComplete || !ident.UserType.IsSet() {
		return Snapshot{State: StateIncompleteProfile, Identity: ident}
	}
	return Snapshot{State: StateComplete, Identity: ident}
}

// UserType returns the snapshot's role, or UserTypeUnset when anonymous.
func (s Snapshot) UserType() enums.UserType {
	if s.Identity == nil {
		return enums.UserTypeUnset
	}
	return s.Identity.UserType
}

// Authenticated reports whether the snapshot carries a signed-in identity.
func (s Snapshot) Authenticated() bool {
	return s.State == StateIncompleteProfile || s.State == StateComplete
}
