package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"acadportal/backend/internal/dto"
	"acadportal/backend/internal/model"
	"acadportal/backend/internal/repository"
	"acadportal/backend/pkg/timeutil"
)

var (
	ErrTimeSlotNotFound = errors.New("time slot not found")
	ErrPairNotEligible  = errors.New("module/faculty pair not eligible for this batch")
)

// ConflictError carries the colliding commitments so handlers can render an
// actionable message instead of a bare rejection.
type ConflictError struct {
	Conflicts []dto.ConflictSummary
}

func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("%s %s-%s (%s)", c.Kind, c.StartTime, c.EndTime, c.ModuleName))
	}
	return "time slot conflicts with: " + strings.Join(parts, "; ")
}

// TimeSlotService is the registry of recurring weekly templates. Every write
// re-runs eligibility and conflict detection server-side; advisory results a
// client computed earlier are never trusted.
type TimeSlotService interface {
	Create(ctx context.Context, req *dto.CreateTimeSlotRequest, createdBy string) (*dto.TimeSlotResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TimeSlotResponse, error)
	List(ctx context.Context, req *dto.TimeSlotListRequest) ([]dto.TimeSlotResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTimeSlotRequest, updatedBy string) (*dto.TimeSlotResponse, error)
	Delete(ctx context.Context, id string, deletedBy string) error
}

type timeSlotService struct {
	repo        *repository.Repository
	eligibility EligibilityService
	conflicts   ConflictService
	logger      *zap.Logger
}

// NewTimeSlotService creates a TimeSlotService instance.
func NewTimeSlotService(repo *repository.Repository, eligibility EligibilityService, conflicts ConflictService, logger *zap.Logger) TimeSlotService {
	return &timeSlotService{
		repo:        repo,
		eligibility: eligibility,
		conflicts:   conflicts,
		logger:      logger,
	}
}

func (s *timeSlotService) Create(ctx context.Context, req *dto.CreateTimeSlotRequest, createdBy string) (*dto.TimeSlotResponse, error) {
	if !timeutil.ValidRange(req.StartTime, req.EndTime) {
		return nil, ErrInvalidTimeRange
	}

	if err := s.requireEligible(ctx, req.BatchID, "", req.ModuleID, req.FacultyID); err != nil {
		return nil, err
	}
	if err := s.requireNoConflict(ctx, &dto.ConflictCheckRequest{
		FacultyID: req.FacultyID,
		BatchID:   req.BatchID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}); err != nil {
		return nil, err
	}

	slot := &model.TimeSlot{
		BatchID:   req.BatchID,
		ModuleID:  req.ModuleID,
		FacultyID: req.FacultyID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsActive:  true,
	}
	slot.CreatedBy = &createdBy
	slot.UpdatedBy = &createdBy

	if err := s.repo.TimeSlot.Create(ctx, slot); err != nil {
		s.logger.Error("create time slot failed", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.TimeSlot.GetByID(ctx, slot.TimeSlotID)
	if err != nil {
		s.logger.Error("reload created time slot failed", zap.Error(err))
		return nil, err
	}
	return toTimeSlotResponse(created), nil
}

func (s *timeSlotService) GetByID(ctx context.Context, id string) (*dto.TimeSlotResponse, error) {
	slot, err := s.repo.TimeSlot.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimeSlotNotFound
		}
		s.logger.Error("get time slot failed", zap.Error(err))
		return nil, err
	}
	return toTimeSlotResponse(slot), nil
}

func (s *timeSlotService) List(ctx context.Context, req *dto.TimeSlotListRequest) ([]dto.TimeSlotResponse, error) {
	slots, err := s.repo.TimeSlot.List(ctx, req.BatchID, req.FacultyID, req.DayOfWeek)
	if err != nil {
		s.logger.Error("list time slots failed", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.TimeSlotResponse, 0, len(slots))
	for i := range slots {
		resp = append(resp, *toTimeSlotResponse(&slots[i]))
	}
	return resp, nil
}

func (s *timeSlotService) Update(ctx context.Context, id string, req *dto.UpdateTimeSlotRequest, updatedBy string) (*dto.TimeSlotResponse, error) {
	slot, err := s.repo.TimeSlot.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimeSlotNotFound
		}
		s.logger.Error("get time slot for update failed", zap.Error(err))
		return nil, err
	}

	// merge the partial update onto the current values
	if req.ModuleID != nil {
		slot.ModuleID = *req.ModuleID
	}
	if req.FacultyID != nil {
		slot.FacultyID = *req.FacultyID
	}
	if req.DayOfWeek != nil {
		slot.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		slot.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		slot.EndTime = *req.EndTime
	}
	if req.IsActive != nil {
		slot.IsActive = *req.IsActive
	}

	if !timeutil.ValidRange(slot.StartTime, slot.EndTime) {
		return nil, ErrInvalidTimeRange
	}

	// the pair only needs re-validation when it actually changed; the edited
	// slot itself grandfathers its current module/faculty into the check
	if req.ModuleID != nil || req.FacultyID != nil {
		if err := s.requireEligible(ctx, slot.BatchID, id, slot.ModuleID, slot.FacultyID); err != nil {
			return nil, err
		}
	}

	// an inactive slot cannot collide, so only active results get re-checked
	if slot.IsActive {
		if err := s.requireNoConflict(ctx, &dto.ConflictCheckRequest{
			FacultyID:     slot.FacultyID,
			BatchID:       slot.BatchID,
			DayOfWeek:     slot.DayOfWeek,
			StartTime:     slot.StartTime,
			EndTime:       slot.EndTime,
			ExcludeSlotID: id,
		}); err != nil {
			return nil, err
		}
	}

	slot.UpdatedBy = &updatedBy
	slot.UpdatedAt = time.Now()
	if err := s.repo.TimeSlot.Update(ctx, slot); err != nil {
		s.logger.Error("update time slot failed", zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.TimeSlot.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("reload updated time slot failed", zap.Error(err))
		return nil, err
	}
	return toTimeSlotResponse(updated), nil
}

// Delete soft-deletes a template. Sessions already materialized from it are
// untouched; only future expansion stops.
func (s *timeSlotService) Delete(ctx context.Context, id string, deletedBy string) error {
	if _, err := s.repo.TimeSlot.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTimeSlotNotFound
		}
		s.logger.Error("get time slot for delete failed", zap.Error(err))
		return err
	}

	count, err := s.repo.Session.CountByTimeSlot(ctx, id)
	if err != nil {
		s.logger.Error("count sessions for slot delete failed", zap.Error(err))
		return err
	}

	if err := s.repo.TimeSlot.Delete(ctx, id, deletedBy); err != nil {
		s.logger.Error("delete time slot failed", zap.Error(err))
		return err
	}

	s.logger.Info("time slot deleted",
		zap.String("time_slot_id", id),
		zap.Int64("sessions_retained", count))
	return nil
}

// requireEligible re-resolves eligibility and rejects pairs outside it. A
// degraded resolution lists the unfiltered global candidates and still
// vouches for any pair it contains: blocking every schedule write during an
// assignment-store outage would hurt more than the occasional extra pair.
func (s *timeSlotService) requireEligible(ctx context.Context, batchID, editSlotID, moduleID, facultyID string) error {
	resolved, err := s.eligibility.Resolve(ctx, batchID, editSlotID)
	if err != nil {
		return err
	}
	if resolved.Degraded {
		s.logger.Warn("eligibility degraded at commit time",
			zap.String("batch_id", batchID),
			zap.String("module_id", moduleID),
			zap.String("faculty_id", facultyID))
	}
	if !eligible(resolved, moduleID, facultyID) {
		return ErrPairNotEligible
	}
	return nil
}

func (s *timeSlotService) requireNoConflict(ctx context.Context, req *dto.ConflictCheckRequest) error {
	result, err := s.conflicts.Check(ctx, req)
	if err != nil {
		return err
	}
	if result.HasConflict {
		return &ConflictError{Conflicts: result.Conflicts}
	}
	return nil
}

func toTimeSlotResponse(slot *model.TimeSlot) *dto.TimeSlotResponse {
	resp := &dto.TimeSlotResponse{
		ID:        slot.TimeSlotID,
		DayOfWeek: slot.DayOfWeek,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		IsActive:  slot.IsActive,
		CreatedAt: slot.CreatedAt.Format(time.RFC3339),
		UpdatedAt: slot.UpdatedAt.Format(time.RFC3339),
	}
	if slot.Batch != nil {
		resp.Batch = &dto.BatchBrief{ID: slot.Batch.BatchID, Name: slot.Batch.Name}
	}
	if slot.Module != nil {
		resp.Module = &dto.ModuleBrief{ID: slot.Module.ModuleID, Name: slot.Module.Name, Code: slot.Module.Code}
	}
	if slot.Faculty != nil {
		resp.Faculty = &dto.FacultyBrief{ID: slot.Faculty.UserID, Name: slot.Faculty.Name}
	}
	return resp
}
