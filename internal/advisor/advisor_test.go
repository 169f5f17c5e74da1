package advisor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"acadportal/backend/internal/dto"
)

func proposal(start, end string) *dto.ConflictCheckRequest {
	return &dto.ConflictCheckRequest{
		FacultyID: "fac-1",
		BatchID:   "batch-1",
		DayOfWeek: 1,
		StartTime: start,
		EndTime:   end,
	}
}

func clearCheck(_ context.Context, _ *dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error) {
	return &dto.ConflictCheckResponse{}, nil
}

// waitState polls until the advisor reaches the wanted state or times out.
func waitState(t *testing.T, a *Advisor, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if a.Result().State == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for state %s, still %s", want, a.Result().State)
}

func TestAdvisor_InitialStateIdle(t *testing.T) {
	a := New(clearCheck, zap.NewNop())
	if a.Result().State != StateIdle {
		t.Errorf("expected IDLE before any proposal, got %s", a.Result().State)
	}
	if a.CommitAllowed() {
		t.Error("commit must be blocked before any check")
	}
}

func TestAdvisor_ClearProposalUnlocksCommit(t *testing.T) {
	a := New(clearCheck, zap.NewNop(), WithSettleWindow(5*time.Millisecond))

	a.Propose(proposal("09:00", "10:00"))
	if a.Result().State != StateChecking {
		t.Errorf("expected CHECKING right after proposal, got %s", a.Result().State)
	}
	if a.CommitAllowed() {
		t.Error("commit must stay blocked while checking")
	}

	waitState(t, a, StateClear)
	if !a.CommitAllowed() {
		t.Error("commit must unlock on a clear verdict")
	}
}

func TestAdvisor_ConflictBlocksCommit(t *testing.T) {
	check := func(_ context.Context, _ *dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error) {
		return &dto.ConflictCheckResponse{
			HasConflict: true,
			Conflicts:   []dto.ConflictSummary{{SlotID: "slot-x", Kind: "faculty"}},
		}, nil
	}
	a := New(check, zap.NewNop(), WithSettleWindow(5*time.Millisecond))

	a.Propose(proposal("09:00", "10:00"))
	waitState(t, a, StateConflict)

	if a.CommitAllowed() {
		t.Error("commit must be blocked on conflict")
	}
	if len(a.Result().Conflicts) != 1 {
		t.Error("the conflicting slots must be reported")
	}
}

func TestAdvisor_DegenerateProposalInvalidWithoutCheck(t *testing.T) {
	var calls atomic.Int32
	check := func(_ context.Context, _ *dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error) {
		calls.Add(1)
		return &dto.ConflictCheckResponse{}, nil
	}
	a := New(check, zap.NewNop(), WithSettleWindow(5*time.Millisecond))

	a.Propose(&dto.ConflictCheckRequest{FacultyID: "fac-1"}) // missing everything else
	if a.Result().State != StateInvalid {
		t.Errorf("expected INVALID, got %s", a.Result().State)
	}

	a.Propose(proposal("10:00", "09:00")) // inverted range
	if a.Result().State != StateInvalid {
		t.Errorf("expected INVALID for inverted range, got %s", a.Result().State)
	}

	time.Sleep(30 * time.Millisecond)
	if calls.Load() != 0 {
		t.Errorf("degenerate input must never reach the detector, got %d calls", calls.Load())
	}
}

func TestAdvisor_DebounceCoalescesBursts(t *testing.T) {
	var calls atomic.Int32
	check := func(_ context.Context, _ *dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error) {
		calls.Add(1)
		return &dto.ConflictCheckResponse{}, nil
	}
	a := New(check, zap.NewNop(), WithSettleWindow(50*time.Millisecond))

	// a typing burst: five edits well inside one settle window
	for i := 0; i < 5; i++ {
		a.Propose(proposal("09:00", "10:00"))
		time.Sleep(2 * time.Millisecond)
	}

	waitState(t, a, StateClear)
	if got := calls.Load(); got != 1 {
		t.Errorf("burst must coalesce into one check, got %d", got)
	}
}

func TestAdvisor_StaleResultDiscarded(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	check := func(ctx context.Context, req *dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error) {
		if calls.Add(1) == 1 {
			// first check hangs until released, then reports a conflict
			select {
			case <-release:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			return &dto.ConflictCheckResponse{
				HasConflict: true,
				Conflicts:   []dto.ConflictSummary{{SlotID: "stale"}},
			}, nil
		}
		return &dto.ConflictCheckResponse{}, nil
	}
	a := New(check, zap.NewNop(), WithSettleWindow(2*time.Millisecond))

	a.Propose(proposal("09:00", "10:00"))
	// wait for the first check to actually start
	deadline := time.Now().Add(time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
	}

	// newer proposal supersedes the hung check
	a.Propose(proposal("11:00", "12:00"))
	waitState(t, a, StateClear)

	close(release)
	time.Sleep(20 * time.Millisecond)

	result := a.Result()
	if result.State != StateClear {
		t.Errorf("stale conflict must not overwrite the newer verdict, got %s", result.State)
	}
}

func TestAdvisor_IndeterminateBlocksUntilRetry(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	check := func(_ context.Context, _ *dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error) {
		if fail.Load() {
			return nil, errors.New("detector unavailable")
		}
		return &dto.ConflictCheckResponse{}, nil
	}
	a := New(check, zap.NewNop(), WithSettleWindow(5*time.Millisecond))

	a.Propose(proposal("09:00", "10:00"))
	waitState(t, a, StateIndeterminate)
	if a.CommitAllowed() {
		t.Error("a failed check must keep commit blocked")
	}

	fail.Store(false)
	a.Retry()
	waitState(t, a, StateClear)
	if !a.CommitAllowed() {
		t.Error("a successful retry must unlock commit")
	}
}

func TestAdvisor_StopCancelsPendingCheck(t *testing.T) {
	var calls atomic.Int32
	check := func(_ context.Context, _ *dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error) {
		calls.Add(1)
		return &dto.ConflictCheckResponse{}, nil
	}
	a := New(check, zap.NewNop(), WithSettleWindow(20*time.Millisecond))

	a.Propose(proposal("09:00", "10:00"))
	a.Stop()

	time.Sleep(60 * time.Millisecond)
	if calls.Load() != 0 {
		t.Errorf("Stop before the settle window must cancel the check, got %d calls", calls.Load())
	}
}
