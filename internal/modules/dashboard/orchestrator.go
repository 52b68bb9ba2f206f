package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/MuhamadAgungGumelar/compta-web/internal/core/backend"
	"github.com/MuhamadAgungGumelar/compta-web/internal/core/session"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Backend is the part of the API client the dashboard needs.
type Backend interface {
	ResolveIdentity(ctx context.Context, token string) (backend.Identity, error)
	FetchStatistics(ctx context.Context, token string) (backend.AggregateStatistics, error)
	FetchOrdersPerPeriod(ctx context.Context, token, userID string) ([]backend.PeriodOrderPoint, error)
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithDispatch replaces the role dispatch table.
func WithDispatch(t DispatchTable) Option {
	return func(o *Orchestrator) { o.dispatch = t }
}

// WithTimeout bounds a whole Mount or ChangeIdentity run.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.timeout = d }
}

// Orchestrator runs the dashboard pipeline for one page load: resolve who
// the user is, fetch what their role needs, and keep the results.
//
// Every state write goes through a guard keyed on the identity version, so
// a result for an identity that has since been replaced, or that lands
// after Unmount, is dropped.
type Orchestrator struct {
	api      Backend
	dispatch DispatchTable
	timeout  time.Duration

	mu        sync.Mutex
	state     State
	version   uint64
	pending   int
	unmounted bool
	token     string
}

func New(api Backend, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		api:      api,
		dispatch: DefaultDispatch(),
		state:    State{Phase: PhaseIdle},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Mount runs the pipeline for sess until it settles and returns the
// resulting snapshot. If sess carries no identity yet it is resolved and
// stored on sess.
func (o *Orchestrator) Mount(ctx context.Context, sess *session.Session) State {
	ctx, cancel := o.withTimeout(ctx)
	defer cancel()

	token := ""
	if sess.Authenticated() {
		token = sess.Token
	}

	version, ok := o.begin(token)
	if !ok {
		return o.Snapshot()
	}
	if token == "" {
		o.unauthenticate(version, backend.ErrUnauthenticated)
		return o.Snapshot()
	}

	identity := sess.Identity
	if identity == nil {
		if !o.setPhase(version, PhaseResolvingIdentity) {
			return o.Snapshot()
		}
		resolved, err := sess.Refresh(ctx, o.api)
		if err != nil {
			o.unauthenticate(version, err)
			return o.Snapshot()
		}
		identity = &resolved
	}

	o.load(ctx, version, *identity)
	return o.Snapshot()
}

// ChangeIdentity switches the pipeline to id. Data held for the previous
// identity is dropped at once and results still in flight for it are
// discarded when they arrive. The fetches for id run before it returns.
func (o *Orchestrator) ChangeIdentity(ctx context.Context, id backend.Identity) State {
	ctx, cancel := o.withTimeout(ctx)
	defer cancel()

	o.mu.Lock()
	if o.unmounted || o.state.Phase == PhaseUnauthenticated {
		o.mu.Unlock()
		return o.Snapshot()
	}
	o.version++
	version := o.version
	o.pending = 0
	o.state = State{Phase: PhaseIdle}
	hasToken := o.token != ""
	o.mu.Unlock()

	if !hasToken {
		o.unauthenticate(version, backend.ErrUnauthenticated)
		return o.Snapshot()
	}

	o.load(ctx, version, id)
	return o.Snapshot()
}

// Unmount stops the orchestrator from accepting any further result.
func (o *Orchestrator) Unmount() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.unmounted = true
}

// Snapshot returns a copy of the current state.
func (o *Orchestrator) Snapshot() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.clone()
}

func (o *Orchestrator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.timeout > 0 {
		return context.WithTimeout(ctx, o.timeout)
	}
	return context.WithCancel(ctx)
}

// begin starts a new run and returns its version.
func (o *Orchestrator) begin(token string) (uint64, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.unmounted {
		return 0, false
	}
	o.version++
	o.pending = 0
	o.token = token
	o.state = State{Phase: PhaseIdle}
	return o.version, true
}

// current must be called with mu held.
func (o *Orchestrator) current(version uint64) bool {
	return version == o.version && !o.unmounted && o.state.Phase != PhaseUnauthenticated
}

func (o *Orchestrator) setPhase(version uint64, phase Phase) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.current(version) {
		return false
	}
	o.state.Phase = phase
	return true
}

func (o *Orchestrator) unauthenticate(version uint64, cause error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.current(version) {
		return
	}
	o.unauthenticateLocked(cause)
}

// unauthenticateLocked ends the run. A cause other than a rejected
// credential means the identity could not be checked; the kind records
// which, so the credential is only dropped when it was actually refused.
func (o *Orchestrator) unauthenticateLocked(cause error) {
	kind := backend.KindOf(cause)
	if kind == backend.KindNone {
		kind = backend.KindUnauthenticated
	}

	o.pending = 0
	o.state = State{
		Phase:     PhaseUnauthenticated,
		ErrorKind: kind,
	}

	if kind == backend.KindUnauthenticated {
		log.Info().Err(cause).Msg("dashboard: credential missing or rejected")
		return
	}
	log.Warn().Err(cause).Str("kind", string(kind)).Msg("dashboard: identity could not be verified")
	o.state.Error = identityUnavailableMessage
}

// load adopts id for version and runs the fetches its role needs.
func (o *Orchestrator) load(ctx context.Context, version uint64, id backend.Identity) {
	fetches := o.dispatch.For(id.Role)

	o.mu.Lock()
	if !o.current(version) {
		o.mu.Unlock()
		return
	}
	token := o.token
	o.state.Identity = &id
	o.state.Fetches = fetches
	if len(fetches) == 0 {
		o.state.Phase = PhaseReady
		o.mu.Unlock()
		return
	}
	o.state.Phase = PhaseFetching
	o.state.Loading = true
	o.pending = len(fetches)
	o.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	for _, f := range fetches {
		f := f
		g.Go(func() error {
			return o.run(gctx, version, token, id, f)
		})
	}
	if err := g.Wait(); err != nil {
		log.Debug().Err(err).Str("role", string(id.Role)).Msg("dashboard: fetches stopped")
	}
}

// run performs one fetch. Only an authentication failure is returned, so
// that it cancels the sibling fetch; every other outcome lands in state.
func (o *Orchestrator) run(ctx context.Context, version uint64, token string, id backend.Identity, f Fetch) error {
	switch f {
	case FetchStatistics:
		stats, err := o.api.FetchStatistics(ctx, token)
		return o.finish(version, f, err, func(s *State) { s.Statistics = &stats })

	case FetchOrdersPerPeriod, FetchUserOrdersPerPeriod:
		userID := ""
		if f == FetchUserOrdersPerPeriod {
			userID = id.ID.String()
		}
		points, err := o.api.FetchOrdersPerPeriod(ctx, token, userID)
		return o.finish(version, f, err, func(s *State) {
			if points == nil {
				points = []backend.PeriodOrderPoint{}
			}
			s.Series = points
		})

	default:
		log.Warn().Str("fetch", string(f)).Msg("dashboard: unknown fetch in dispatch table")
		return o.finish(version, f, nil, func(*State) {})
	}
}

// finish applies the outcome of one fetch if it still belongs to the
// current run.
func (o *Orchestrator) finish(version uint64, f Fetch, err error, apply func(*State)) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.current(version) {
		log.Debug().Str("fetch", string(f)).Msg("dashboard: discarding stale result")
		return nil
	}

	kind := backend.KindOf(err)
	switch kind {
	case backend.KindNone:
		apply(&o.state)
	case backend.KindUnauthenticated:
		o.unauthenticateLocked(err)
		return err
	default:
		log.Warn().Err(err).Str("fetch", string(f)).Str("kind", string(kind)).Msg("dashboard: fetch failed")
		clearSlot(&o.state, f)
		o.state.Error = errorMessage(f, kind)
		o.state.ErrorKind = kind
	}

	o.pending--
	if o.pending <= 0 {
		o.pending = 0
		o.state.Loading = false
		o.state.Phase = PhaseReady
	}
	return nil
}

const identityUnavailableMessage = "We could not verify your session right now. Please try again later."

func clearSlot(s *State, f Fetch) {
	switch f {
	case FetchStatistics:
		s.Statistics = nil
	case FetchOrdersPerPeriod, FetchUserOrdersPerPeriod:
		s.Series = nil
	}
}

func errorMessage(f Fetch, kind backend.ErrorKind) string {
	subject := "orders per period"
	if f == FetchStatistics {
		subject = "statistics"
	}
	if kind == backend.KindMalformed {
		return "The server sent invalid " + subject + " data."
	}
	return "Unable to load " + subject + ". Please try again later."
}
