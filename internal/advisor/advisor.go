// Package advisor runs conflict checks ahead of commit while a scheduling
// form is still being edited. Results are advisory: the registry re-runs the
// authoritative check on every write, so a stale or missing advisory verdict
// can never corrupt the schedule. What the advisor guarantees is that the
// verdict it shows always corresponds to the latest proposal.
//
// The server does not construct an Advisor itself; this is the embeddable
// client-side counterpart of the check-conflict endpoint, for frontends and
// tools that call the API while a form is being edited. Wire it with the
// detector directly (ConflictService.Check satisfies CheckFunc) or with any
// closure that posts to /time-slots/check-conflict.
package advisor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"acadportal/backend/internal/dto"
	"acadportal/backend/pkg/timeutil"
)

// State is the advisor's externally visible phase.
type State string

const (
	// StateIdle means no proposal has been submitted yet.
	StateIdle State = "IDLE"
	// StateChecking means a check is pending or in flight.
	StateChecking State = "CHECKING"
	// StateClear means the latest proposal has no conflicts.
	StateClear State = "CLEAR"
	// StateConflict means the latest proposal collides with existing slots.
	StateConflict State = "CONFLICT"
	// StateInvalid means the proposal is too incomplete or malformed to check.
	StateInvalid State = "INVALID"
	// StateIndeterminate means the check itself failed; commit stays blocked
	// until a retry succeeds.
	StateIndeterminate State = "INDETERMINATE"
)

// CheckFunc is the underlying detector, typically ConflictService.Check.
type CheckFunc func(ctx context.Context, req *dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error)

// Result is the advisor's current verdict.
type Result struct {
	State     State
	Conflicts []dto.ConflictSummary
	Err       error
}

// Advisor debounces proposals and discards stale verdicts. Each accepted
// proposal bumps a generation counter and cancels the previous in-flight
// check; a check's result is applied only if its generation is still current
// when it lands.
type Advisor struct {
	check  CheckFunc
	settle time.Duration
	logger *zap.Logger

	mu         sync.Mutex
	generation uint64
	state      State
	conflicts  []dto.ConflictSummary
	err        error
	pending    *dto.ConflictCheckRequest
	timer      *time.Timer
	cancel     context.CancelFunc

	// onSettle is invoked after each applied verdict, for tests and UIs that
	// want a notification instead of polling Result.
	onSettle func(Result)
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithSettleWindow overrides the default debounce window.
func WithSettleWindow(d time.Duration) Option {
	return func(a *Advisor) { a.settle = d }
}

// WithNotify registers a callback fired after every applied verdict.
func WithNotify(fn func(Result)) Option {
	return func(a *Advisor) { a.onSettle = fn }
}

// New creates an Advisor around a detector.
func New(check CheckFunc, logger *zap.Logger, opts ...Option) *Advisor {
	a := &Advisor{
		check:  check,
		settle: 500 * time.Millisecond,
		logger: logger,
		state:  StateIdle,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Propose submits the current form values. Successive calls within the settle
// window coalesce: only the last proposal is checked.
func (a *Advisor) Propose(req *dto.ConflictCheckRequest) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.generation++
	a.cancelInFlightLocked()

	if degenerate(req) {
		a.pending = nil
		a.setLocked(Result{State: StateInvalid})
		return
	}

	a.pending = req
	a.state = StateChecking
	a.conflicts = nil
	a.err = nil

	gen := a.generation
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.settle, func() { a.fire(gen) })
}

// Retry re-submits the last proposal after an indeterminate verdict.
func (a *Advisor) Retry() {
	a.mu.Lock()
	req := a.pending
	a.mu.Unlock()
	if req != nil {
		a.Propose(req)
	}
}

// Result returns the current verdict.
func (a *Advisor) Result() Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Result{State: a.state, Conflicts: a.conflicts, Err: a.err}
}

// CommitAllowed reports whether the UI should enable the save action. Only an
// affirmative clear verdict unlocks it; checking, failure and conflict all
// keep the commit blocked.
func (a *Advisor) CommitAllowed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state == StateClear
}

// Stop cancels any pending or in-flight check.
func (a *Advisor) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.generation++
	a.cancelInFlightLocked()
	if a.timer != nil {
		a.timer.Stop()
	}
}

// fire runs the detector for the given generation once the settle window
// elapses. The generation is re-validated before the call and again before
// the verdict is applied.
func (a *Advisor) fire(gen uint64) {
	a.mu.Lock()
	if gen != a.generation || a.pending == nil {
		a.mu.Unlock()
		return
	}
	req := a.pending
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.mu.Unlock()

	resp, err := a.check(ctx, req)

	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.generation {
		return // a newer proposal superseded this check
	}
	a.cancel = nil

	switch {
	case err != nil:
		a.logger.Warn("advisory conflict check failed", zap.Error(err))
		a.setLocked(Result{State: StateIndeterminate, Err: err})
	case resp.HasConflict:
		a.setLocked(Result{State: StateConflict, Conflicts: resp.Conflicts})
	default:
		a.setLocked(Result{State: StateClear})
	}
}

func (a *Advisor) setLocked(r Result) {
	a.state = r.State
	a.conflicts = r.Conflicts
	a.err = r.Err
	if a.onSettle != nil {
		go a.onSettle(r)
	}
}

func (a *Advisor) cancelInFlightLocked() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

// degenerate reports whether the proposal is too incomplete to check. Partial
// forms are normal while the user is still picking values; they produce an
// INVALID verdict rather than a detector round trip.
func degenerate(req *dto.ConflictCheckRequest) bool {
	if req == nil {
		return true
	}
	if req.FacultyID == "" || req.BatchID == "" {
		return true
	}
	if req.DayOfWeek < 1 || req.DayOfWeek > 7 {
		return true
	}
	return !timeutil.ValidRange(req.StartTime, req.EndTime)
}
