package domain

// SessionState is the lifecycle state of a browser session as seen by this
// service.
type SessionState string

const (
	// StateUninitialized means no credential lookup has happened yet.
	StateUninitialized SessionState = "uninitialized"
	// StateLoading means a credential was found and the profile fetch is in
	// flight: Token is set, User is still nil.
	StateLoading SessionState = "loading"
	// StateAuthenticated means the profile fetch confirmed the credential.
	StateAuthenticated SessionState = "authenticated"
	// StateAnonymous means no credential is present, or the last one was
	// rejected and cleared.
	StateAnonymous SessionState = "anonymous"
)

// validSessionTransitions defines the allowed state machine transitions.
var validSessionTransitions = map[SessionState][]SessionState{
	StateUninitialized: {StateLoading, StateAnonymous},
	StateLoading:       {StateAuthenticated, StateAnonymous},
	StateAuthenticated: {StateLoading, StateAnonymous},
	StateAnonymous:     {StateLoading},
}

// CanTransitionTo reports whether moving from s to next is a legal transition.
func (s SessionState) CanTransitionTo(next SessionState) bool {
	for _, allowed := range validSessionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Session is an immutable snapshot of the authentication state.
//
// Token is the source of truth for credential presence. User is non-nil only
// after a profile fetch succeeded for the current token; the two are set and
// cleared together except during the in-flight profile fetch, where Token is
// set, User is nil and Loading is true.
type Session struct {
	User    *User
	Token   string
	Loading bool
}

// IsAuthenticated is derived from credential presence, matching the contract
// that Token, not User, answers "is a credential present".
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// State derives the state machine position from the snapshot fields.
func (s Session) State() SessionState {
	switch {
	case s.Loading:
		return StateLoading
	case s.Token != "" && s.User != nil:
		return StateAuthenticated
	default:
		return StateAnonymous
	}
}
