package dashboard

import "github.com/MuhamadAgungGumelar/compta-web/internal/core/backend"

// Phase is the pipeline's position in its state machine:
// idle -> resolving_identity -> unauthenticated | fetching -> ready.
type Phase string

const (
	PhaseIdle              Phase = "idle"
	PhaseResolvingIdentity Phase = "resolving_identity"
	PhaseUnauthenticated   Phase = "unauthenticated"
	PhaseFetching          Phase = "fetching"
	PhaseReady             Phase = "ready"
)

// State is a snapshot of the pipeline. Statistics is nil until a
// statistics fetch succeeds for the current identity. Series is nil until a
// series fetch succeeds and non-nil (possibly empty) afterwards.
type State struct {
	Phase      Phase
	Identity   *backend.Identity
	Fetches    []Fetch
	Statistics *backend.AggregateStatistics
	Series     []backend.PeriodOrderPoint
	Loading    bool
	Error      string
	ErrorKind  backend.ErrorKind
}

// CredentialRejected reports whether the run ended because the credential
// is missing or was refused. It is false when the identity lookup failed
// for any other reason.
func (s State) CredentialRejected() bool {
	return s.Phase == PhaseUnauthenticated && s.ErrorKind == backend.KindUnauthenticated
}

func (s State) clone() State {
	out := s
	if s.Identity != nil {
		id := *s.Identity
		out.Identity = &id
	}
	if s.Statistics != nil {
		stats := *s.Statistics
		if s.Statistics.Roles != nil {
			roles := *s.Statistics.Roles
			stats.Roles = &roles
		}
		out.Statistics = &stats
	}
	if s.Series != nil {
		out.Series = make([]backend.PeriodOrderPoint, len(s.Series))
		copy(out.Series, s.Series)
	}
	if s.Fetches != nil {
		out.Fetches = make([]Fetch, len(s.Fetches))
		copy(out.Fetches, s.Fetches)
	}
	return out
}
