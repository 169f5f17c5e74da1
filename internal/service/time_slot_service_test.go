package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"acadportal/backend/internal/dto"
	"acadportal/backend/internal/model"
)

func setupTimeSlotService() (TimeSlotService, *testEnv) {
	env := newTestEnv()
	env.seedSchedulingFixture()
	logger := zap.NewNop()
	eligibility := NewEligibilityService(env.repo, logger)
	conflict := NewConflictService(env.repo, logger)
	return NewTimeSlotService(env.repo, eligibility, conflict, logger), env
}

func createSlotReq() *dto.CreateTimeSlotRequest {
	return &dto.CreateTimeSlotRequest{
		BatchID:   "batch-1",
		ModuleID:  "mod-1",
		FacultyID: "fac-1",
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "10:30",
	}
}

func TestTimeSlotService_Create_Success(t *testing.T) {
	svc, env := setupTimeSlotService()

	slot, err := svc.Create(context.Background(), createSlotReq(), "admin-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if slot.DayOfWeek != 1 || slot.StartTime != "09:00" {
		t.Errorf("unexpected slot values: %+v", slot)
	}
	if !slot.IsActive {
		t.Error("new slots must start active")
	}
	if len(env.timeSlots.slots) != 1 {
		t.Errorf("expected 1 stored slot, got %d", len(env.timeSlots.slots))
	}
}

func TestTimeSlotService_Create_InvalidRange(t *testing.T) {
	svc, _ := setupTimeSlotService()

	req := createSlotReq()
	req.StartTime = "10:30"
	req.EndTime = "09:00"

	_, err := svc.Create(context.Background(), req, "admin-1")
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}
}

func TestTimeSlotService_Create_IneligiblePairRejected(t *testing.T) {
	svc, env := setupTimeSlotService()
	env.users.users["fac-2"] = &model.User{
		UserID: "fac-2", Name: "Unassigned Faculty", Role: model.RoleFaculty, IsActive: true,
	}

	req := createSlotReq()
	req.FacultyID = "fac-2" // not assigned to the batch

	_, err := svc.Create(context.Background(), req, "admin-1")
	if !errors.Is(err, ErrPairNotEligible) {
		t.Fatalf("expected ErrPairNotEligible, got %v", err)
	}
}

func TestTimeSlotService_Create_ConflictRejectedWithDetails(t *testing.T) {
	svc, env := setupTimeSlotService()
	env.addSlot("slot-existing", "fac-1", "batch-1", "mod-1", 1, "09:00", "10:00")

	_, err := svc.Create(context.Background(), createSlotReq(), "admin-1")

	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if len(conflictErr.Conflicts) == 0 {
		t.Fatal("conflict error must name the colliding slots")
	}
	if conflictErr.Conflicts[0].SlotID != "slot-existing" {
		t.Errorf("expected slot-existing in conflict details, got %s", conflictErr.Conflicts[0].SlotID)
	}
}

func TestTimeSlotService_Create_AdjacentSlotAllowed(t *testing.T) {
	svc, env := setupTimeSlotService()
	env.addSlot("slot-existing", "fac-1", "batch-1", "mod-1", 1, "07:30", "09:00")

	// starts exactly when the existing slot ends
	if _, err := svc.Create(context.Background(), createSlotReq(), "admin-1"); err != nil {
		t.Fatalf("back-to-back slot should be allowed: %v", err)
	}
}

func TestTimeSlotService_Update_NoOpEditDoesNotSelfConflict(t *testing.T) {
	svc, env := setupTimeSlotService()
	env.addSlot("slot-1", "fac-1", "batch-1", "mod-1", 1, "09:00", "10:30")

	start := "09:00"
	req := &dto.UpdateTimeSlotRequest{StartTime: &start}

	if _, err := svc.Update(context.Background(), "slot-1", req, "admin-1"); err != nil {
		t.Fatalf("unchanged times must not conflict with the slot itself: %v", err)
	}
}

func TestTimeSlotService_Update_GrandfatheredPairSurvivesEdit(t *testing.T) {
	svc, env := setupTimeSlotService()
	// the slot's faculty lost their batch assignment after creation
	env.users.users["fac-old"] = &model.User{
		UserID: "fac-old", Name: "Former Faculty", Role: model.RoleFaculty, IsActive: true,
	}
	env.addSlot("slot-1", "fac-old", "batch-1", "mod-1", 1, "09:00", "10:30")

	// re-selecting the same pair during an edit must still pass
	moduleID, facultyID := "mod-1", "fac-old"
	req := &dto.UpdateTimeSlotRequest{ModuleID: &moduleID, FacultyID: &facultyID}

	if _, err := svc.Update(context.Background(), "slot-1", req, "admin-1"); err != nil {
		t.Fatalf("the slot's current pair must stay valid during edit: %v", err)
	}
}

func TestTimeSlotService_Update_ConflictOnMove(t *testing.T) {
	svc, env := setupTimeSlotService()
	env.addSlot("slot-1", "fac-1", "batch-1", "mod-1", 1, "09:00", "10:30")
	env.addSlot("slot-2", "fac-1", "batch-1", "mod-1", 2, "09:00", "10:30")

	// moving slot-2 onto slot-1's day collides
	day := 1
	req := &dto.UpdateTimeSlotRequest{DayOfWeek: &day}

	_, err := svc.Update(context.Background(), "slot-2", req, "admin-1")
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestTimeSlotService_Update_DeactivateSkipsConflictCheck(t *testing.T) {
	svc, env := setupTimeSlotService()
	env.addSlot("slot-1", "fac-1", "batch-1", "mod-1", 1, "09:00", "10:30")
	env.addSlot("slot-2", "fac-1", "batch-1", "mod-1", 1, "09:00", "10:30") // pre-existing bad overlap

	inactive := false
	req := &dto.UpdateTimeSlotRequest{IsActive: &inactive}

	if _, err := svc.Update(context.Background(), "slot-2", req, "admin-1"); err != nil {
		t.Fatalf("deactivation must not run the conflict check: %v", err)
	}
}

func TestTimeSlotService_Update_NotFound(t *testing.T) {
	svc, _ := setupTimeSlotService()

	day := 2
	_, err := svc.Update(context.Background(), "missing", &dto.UpdateTimeSlotRequest{DayOfWeek: &day}, "admin-1")
	if !errors.Is(err, ErrTimeSlotNotFound) {
		t.Fatalf("expected ErrTimeSlotNotFound, got %v", err)
	}
}

func TestTimeSlotService_Delete_KeepsMaterializedSessions(t *testing.T) {
	svc, env := setupTimeSlotService()
	env.addSlot("slot-1", "fac-1", "batch-1", "mod-1", 1, "09:00", "10:30")
	env.sessions.sessions["sess-1"] = &model.ClassSession{
		SessionID: "sess-1", TimeSlotID: "slot-1",
		SessionDate: mustDate("2026-09-07"), Status: model.SessionScheduled,
	}

	if err := svc.Delete(context.Background(), "slot-1", "admin-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := env.sessions.sessions["sess-1"]; !ok {
		t.Error("deleting a slot must not delete its sessions")
	}
}
