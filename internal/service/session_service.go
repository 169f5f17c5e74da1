package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"acadportal/backend/config"
	"acadportal/backend/internal/dto"
	"acadportal/backend/internal/model"
	"acadportal/backend/internal/repository"
	"acadportal/backend/pkg/timeutil"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrInvalidDateRange     = errors.New("start date must not be after end date")
	ErrDateRangeTooLong     = errors.New("date range exceeds the materialization limit")
	ErrInvalidTransition    = errors.New("session status does not allow this transition")
	ErrSessionNotDeletable  = errors.New("only future scheduled sessions can be deleted")
	ErrCompletedViaEndpoint = errors.New("sessions complete through attendance save, not status update")
)

// SessionService materializes dated sessions from slot templates and drives
// their lifecycle. Materialization is idempotent: re-running the same range
// skips every (slot, date) pair that already exists, whatever its status.
type SessionService interface {
	Materialize(ctx context.Context, req *dto.MaterializeRequest, createdBy string) (*dto.MaterializeResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SessionResponse, error)
	List(ctx context.Context, req *dto.SessionListRequest) ([]dto.SessionResponse, error)
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateSessionStatusRequest, updatedBy string) (*dto.SessionResponse, error)
	Delete(ctx context.Context, id string) error
}

type sessionService struct {
	cfg    *config.SchedulingConfig
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewSessionService creates a SessionService instance.
func NewSessionService(cfg *config.SchedulingConfig, repo *repository.Repository, logger *zap.Logger) SessionService {
	return &sessionService{
		cfg:    cfg,
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *sessionService) Materialize(ctx context.Context, req *dto.MaterializeRequest, createdBy string) (*dto.MaterializeResponse, error) {
	from, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", req.StartDate, err)
	}
	to, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", req.EndDate, err)
	}
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}
	if int(to.Sub(from).Hours()/24) > s.cfg.MaterializeMaxDays {
		return nil, ErrDateRangeTooLong
	}

	slots, err := s.repo.TimeSlot.ListActiveForScope(ctx, req.BatchID, req.FacultyID)
	if err != nil {
		s.logger.Error("list slots for materialization failed", zap.Error(err))
		return nil, err
	}

	resp := &dto.MaterializeResponse{Sessions: []dto.SessionResponse{}}
	var toCreate []model.ClassSession

	for i := range slots {
		slot := &slots[i]

		existing, err := s.repo.Session.ListDatesBySlot(ctx, slot.TimeSlotID, from, to)
		if err != nil {
			s.logger.Error("list existing session dates failed",
				zap.String("time_slot_id", slot.TimeSlotID), zap.Error(err))
			return nil, err
		}
		taken := make(map[string]bool, len(existing))
		for _, d := range existing {
			taken[d.Format("2006-01-02")] = true
		}

		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			if timeutil.ISOWeekday(d) != slot.DayOfWeek {
				continue
			}
			if taken[d.Format("2006-01-02")] {
				resp.Skipped++
				continue
			}
			session := model.ClassSession{
				TimeSlotID:     slot.TimeSlotID,
				SessionDate:    d,
				ScheduledStart: slot.StartTime,
				ScheduledEnd:   slot.EndTime,
				Status:         model.SessionScheduled,
			}
			session.CreatedBy = &createdBy
			session.UpdatedBy = &createdBy
			session.TimeSlot = slot // carried for the response, not persisted
			toCreate = append(toCreate, session)
		}
	}

	if err := s.repo.Session.BatchCreate(ctx, toCreate); err != nil {
		s.logger.Error("batch create sessions failed", zap.Error(err))
		return nil, err
	}
	resp.Created = len(toCreate)

	now := s.now()
	for i := range toCreate {
		resp.Sessions = append(resp.Sessions, *s.toSessionResponse(&toCreate[i], now))
	}

	s.logger.Info("sessions materialized",
		zap.Int("created", resp.Created),
		zap.Int("skipped", resp.Skipped),
		zap.String("from", req.StartDate),
		zap.String("to", req.EndDate))
	return resp, nil
}

func (s *sessionService) GetByID(ctx context.Context, id string) (*dto.SessionResponse, error) {
	session, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("get session failed", zap.Error(err))
		return nil, err
	}
	return s.toSessionResponse(session, s.now()), nil
}

func (s *sessionService) List(ctx context.Context, req *dto.SessionListRequest) ([]dto.SessionResponse, error) {
	filter := repository.SessionFilter{
		BatchID:   req.BatchID,
		FacultyID: req.FacultyID,
		Status:    req.Status,
	}
	if req.DateFrom != "" {
		d, err := time.Parse("2006-01-02", req.DateFrom)
		if err != nil {
			return nil, fmt.Errorf("invalid date_from %q: %w", req.DateFrom, err)
		}
		filter.DateFrom = &d
	}
	if req.DateTo != "" {
		d, err := time.Parse("2006-01-02", req.DateTo)
		if err != nil {
			return nil, fmt.Errorf("invalid date_to %q: %w", req.DateTo, err)
		}
		filter.DateTo = &d
	}

	sessions, err := s.repo.Session.List(ctx, filter)
	if err != nil {
		s.logger.Error("list sessions failed", zap.Error(err))
		return nil, err
	}

	now := s.now()
	resp := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		resp = append(resp, *s.toSessionResponse(&sessions[i], now))
	}
	return resp, nil
}

func (s *sessionService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateSessionStatusRequest, updatedBy string) (*dto.SessionResponse, error) {
	if req.Status == model.SessionCompleted {
		return nil, ErrCompletedViaEndpoint
	}

	session, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("get session for status update failed", zap.Error(err))
		return nil, err
	}

	if !session.CanTransitionTo(req.Status) {
		return nil, ErrInvalidTransition
	}

	session.Status = req.Status
	session.UpdatedBy = &updatedBy
	session.UpdatedAt = s.now()
	if err := s.repo.Session.Update(ctx, session); err != nil {
		s.logger.Error("update session status failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("session status updated",
		zap.String("session_id", id),
		zap.String("status", req.Status))
	return s.toSessionResponse(session, s.now()), nil
}

// Delete removes a session outright. Allowed only while the session is still
// SCHEDULED and its date is in the future; anything that already happened or
// was resolved stays on the record.
func (s *sessionService) Delete(ctx context.Context, id string) error {
	session, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		s.logger.Error("get session for delete failed", zap.Error(err))
		return err
	}

	today := timeutil.DateOnly(s.now())
	if session.Status != model.SessionScheduled || !session.SessionDate.After(today) {
		return ErrSessionNotDeletable
	}

	if err := s.repo.Session.Delete(ctx, id); err != nil {
		s.logger.Error("delete session failed", zap.Error(err))
		return err
	}
	return nil
}

// toSessionResponse converts a model, computing the display-only PastDue flag
// against the supplied clock. PastDue never mutates the stored status: a
// session that was simply never marked stays SCHEDULED until someone acts.
func (s *sessionService) toSessionResponse(session *model.ClassSession, now time.Time) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		ID:               session.SessionID,
		TimeSlotID:       session.TimeSlotID,
		SessionDate:      session.SessionDate.Format("2006-01-02"),
		ScheduledStart:   session.ScheduledStart,
		ScheduledEnd:     session.ScheduledEnd,
		Status:           session.Status,
		AttendanceMarked: session.AttendanceMarked,
		MeetingLink:      session.EffectiveMeetingLink(),
		CreatedAt:        session.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        session.UpdatedAt.Format(time.RFC3339),
	}

	if session.Status == model.SessionScheduled {
		resp.PastDue = now.After(sessionEnd(session))
	}

	if slot := session.TimeSlot; slot != nil {
		if slot.Batch != nil {
			resp.Batch = &dto.BatchBrief{ID: slot.Batch.BatchID, Name: slot.Batch.Name}
		}
		if slot.Module != nil {
			resp.Module = &dto.ModuleBrief{ID: slot.Module.ModuleID, Name: slot.Module.Name, Code: slot.Module.Code}
		}
		if slot.Faculty != nil {
			resp.Faculty = &dto.FacultyBrief{ID: slot.Faculty.UserID, Name: slot.Faculty.Name}
		}
	}
	return resp
}

// sessionEnd combines the session date with its scheduled end time.
func sessionEnd(session *model.ClassSession) time.Time {
	d := session.SessionDate
	mins, err := timeutil.MinutesOfDay(session.ScheduledEnd)
	if err != nil {
		mins = 24 * 60 // unparseable end time: treat as end of day
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, mins, 0, 0, d.Location())
}

// sessionStart combines the session date with its scheduled start time.
func sessionStart(session *model.ClassSession) time.Time {
	d := session.SessionDate
	mins, err := timeutil.MinutesOfDay(session.ScheduledStart)
	if err != nil {
		mins = 0
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, mins, 0, 0, d.Location())
}
