package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"acadportal/backend/internal/dto"
	"acadportal/backend/internal/model"
	"acadportal/backend/internal/repository"
	"acadportal/backend/pkg/timeutil"
)

var (
	ErrInvalidTimeRange = errors.New("start time must be earlier than end time")
)

// ConflictService is the authoritative overlap detector. The same rule runs
// here for both advisory checks from the UI and the registry's commit-time
// re-validation; advisory results are never trusted at commit.
type ConflictService interface {
	Check(ctx context.Context, req *dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error)
}

type conflictService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewConflictService creates a ConflictService instance.
func NewConflictService(repo *repository.Repository, logger *zap.Logger) ConflictService {
	return &conflictService{repo: repo, logger: logger}
}

// Check finds every active slot colliding with the proposal. A conflict
// exists when the proposed range overlaps another active slot on the same
// day sharing the faculty (one person cannot teach twice at once) or the
// batch (one batch cannot attend twice at once). The slot being edited is
// excluded so a no-op edit never conflicts with itself.
func (s *conflictService) Check(ctx context.Context, req *dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error) {
	if !timeutil.ValidRange(req.StartTime, req.EndTime) {
		return nil, ErrInvalidTimeRange
	}

	facultySlots, err := s.repo.TimeSlot.ListActiveByFacultyAndDay(ctx, req.FacultyID, req.DayOfWeek)
	if err != nil {
		s.logger.Error("list faculty slots for conflict check failed", zap.Error(err))
		return nil, err
	}
	batchSlots, err := s.repo.TimeSlot.ListActiveByBatchAndDay(ctx, req.BatchID, req.DayOfWeek)
	if err != nil {
		s.logger.Error("list batch slots for conflict check failed", zap.Error(err))
		return nil, err
	}

	seen := make(map[string]bool)
	var conflicts []dto.ConflictSummary

	collect := func(slots []model.TimeSlot, kind string) {
		for i := range slots {
			slot := &slots[i]
			if slot.TimeSlotID == req.ExcludeSlotID || seen[slot.TimeSlotID] {
				continue
			}
			if !timeutil.Overlaps(req.StartTime, req.EndTime, slot.StartTime, slot.EndTime) {
				continue
			}
			seen[slot.TimeSlotID] = true

			summary := dto.ConflictSummary{
				SlotID:    slot.TimeSlotID,
				Kind:      kind,
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
			}
			if slot.Batch != nil {
				summary.BatchName = slot.Batch.Name
			}
			if slot.Module != nil {
				summary.ModuleName = slot.Module.Name
			}
			conflicts = append(conflicts, summary)
		}
	}

	collect(facultySlots, "faculty")
	collect(batchSlots, "batch")

	return &dto.ConflictCheckResponse{
		HasConflict: len(conflicts) > 0,
		Conflicts:   conflicts,
	}, nil
}
