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
)

var (
	ErrMarkingNotAllowed  = errors.New("attendance marking is not allowed for this session")
	ErrStudentNotEnrolled = errors.New("student is not actively enrolled in this batch")
	ErrNotSessionFaculty  = errors.New("only the session's assigned faculty may mark attendance")
)

// AttendanceService builds live rosters and records attendance. Saving is the
// only path to COMPLETED: the records and the status flip commit in a single
// transaction, so a failed save leaves the session exactly as it was.
type AttendanceService interface {
	GetRoster(ctx context.Context, sessionID string) (*dto.RosterResponse, error)
	// Save writes records on behalf of callerID. Faculty may only mark
	// sessions materialized from their own slots; admins may mark any.
	Save(ctx context.Context, sessionID string, req *dto.SaveAttendanceRequest, callerID, callerRole string) (*dto.SaveAttendanceResponse, error)
}

type attendanceService struct {
	cfg    *config.SchedulingConfig
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewAttendanceService creates an AttendanceService instance.
func NewAttendanceService(cfg *config.SchedulingConfig, repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{
		cfg:    cfg,
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// GetRoster resolves the live enrollment list, overlays saved records, and
// defaults every unmarked student to PRESENT. The roster is never snapshotted:
// a student enrolled after materialization still appears here.
func (s *attendanceService) GetRoster(ctx context.Context, sessionID string) (*dto.RosterResponse, error) {
	session, err := s.repo.Session.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("get session for roster failed", zap.Error(err))
		return nil, err
	}
	if session.TimeSlot == nil {
		return nil, fmt.Errorf("session %s has no originating slot", sessionID)
	}

	enrollments, err := s.repo.Enrollment.ListActiveByBatch(ctx, session.TimeSlot.BatchID)
	if err != nil {
		s.logger.Error("list enrollments for roster failed", zap.Error(err))
		return nil, err
	}

	records, err := s.repo.Attendance.ListBySession(ctx, sessionID)
	if err != nil {
		s.logger.Error("list attendance for roster failed", zap.Error(err))
		return nil, err
	}
	saved := make(map[string]string, len(records))
	for _, r := range records {
		saved[r.StudentID] = r.Status
	}

	enrolled := make(map[string]bool, len(enrollments))
	resp := &dto.RosterResponse{
		SessionID: sessionID,
		Students:  make([]dto.RosterStudent, 0, len(enrollments)),
	}
	for _, e := range enrollments {
		enrolled[e.StudentID] = true
		student := dto.RosterStudent{
			StudentID: e.StudentID,
			Status:    model.AttendancePresent,
		}
		if e.Student != nil {
			student.Name = e.Student.Name
		}
		if status, ok := saved[e.StudentID]; ok {
			student.Status = status
			student.Saved = true
		}
		resp.Students = append(resp.Students, student)
	}

	resp.Stats = computeStats(enrolled, records)
	resp.IsMarkingAllowed, resp.Message = s.markingAllowed(session)
	return resp, nil
}

// Save upserts the submitted records and flips a SCHEDULED session to
// COMPLETED atomically. Re-saving within the marking window is a correction:
// existing records update in place and the status stays COMPLETED.
func (s *attendanceService) Save(ctx context.Context, sessionID string, req *dto.SaveAttendanceRequest, callerID, callerRole string) (*dto.SaveAttendanceResponse, error) {
	session, err := s.repo.Session.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("get session for attendance save failed", zap.Error(err))
		return nil, err
	}
	if session.TimeSlot == nil {
		return nil, fmt.Errorf("session %s has no originating slot", sessionID)
	}

	if callerRole != model.RoleAdmin && session.TimeSlot.FacultyID != callerID {
		return nil, ErrNotSessionFaculty
	}

	if allowed, reason := s.markingAllowed(session); !allowed {
		return nil, fmt.Errorf("%w: %s", ErrMarkingNotAllowed, reason)
	}

	enrollments, err := s.repo.Enrollment.ListActiveByBatch(ctx, session.TimeSlot.BatchID)
	if err != nil {
		s.logger.Error("list enrollments for attendance save failed", zap.Error(err))
		return nil, err
	}
	enrolled := make(map[string]bool, len(enrollments))
	for _, e := range enrollments {
		enrolled[e.StudentID] = true
	}

	records := make([]model.AttendanceRecord, 0, len(req.Attendance))
	for _, entry := range req.Attendance {
		if !model.ValidAttendanceStatus(entry.Status) {
			return nil, fmt.Errorf("invalid attendance status %q", entry.Status)
		}
		if !enrolled[entry.StudentID] {
			return nil, fmt.Errorf("%w: %s", ErrStudentNotEnrolled, entry.StudentID)
		}
		records = append(records, model.AttendanceRecord{
			SessionID: sessionID,
			StudentID: entry.StudentID,
			Status:    entry.Status,
			MarkedBy:  &callerID,
		})
	}

	session.AttendanceMarked = true
	if session.Status == model.SessionScheduled {
		session.Status = model.SessionCompleted
	}
	session.UpdatedBy = &callerID
	session.UpdatedAt = s.now()

	created, updated, err := s.repo.Attendance.SaveWithSession(ctx, session, records)
	if err != nil {
		s.logger.Error("attendance save transaction failed",
			zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("attendance saved",
		zap.String("session_id", sessionID),
		zap.Int("created", created),
		zap.Int("updated", updated))
	return &dto.SaveAttendanceResponse{
		Created:       created,
		Updated:       updated,
		SessionStatus: session.Status,
	}, nil
}

// markingAllowed applies the gate: the session must not be cancelled or
// rescheduled, class must have started, and the configured window after the
// session date must still be open. COMPLETED sessions stay markable within
// the window so mistakes can be corrected.
func (s *attendanceService) markingAllowed(session *model.ClassSession) (bool, string) {
	switch session.Status {
	case model.SessionCancelled:
		return false, "session is cancelled"
	case model.SessionRescheduled:
		return false, "session is rescheduled"
	}

	now := s.now()
	if now.Before(sessionStart(session)) {
		return false, "session has not started yet"
	}

	windowEnd := session.SessionDate.AddDate(0, 0, s.cfg.MarkingWindowDays+1)
	if !now.Before(windowEnd) {
		return false, fmt.Sprintf("marking window closed %d day(s) after the session date",
			s.cfg.MarkingWindowDays)
	}
	return true, ""
}

// computeStats counts only records of currently enrolled students, so the
// counts never exceed TotalEnrolled after someone leaves the batch.
func computeStats(enrolled map[string]bool, records []model.AttendanceRecord) dto.AttendanceStats {
	stats := dto.AttendanceStats{TotalEnrolled: len(enrolled)}
	for _, r := range records {
		if !enrolled[r.StudentID] {
			continue
		}
		switch r.Status {
		case model.AttendancePresent:
			stats.PresentCount++
		case model.AttendanceAbsent:
			stats.AbsentCount++
		}
	}
	if marked := stats.PresentCount + stats.AbsentCount; marked > 0 {
		stats.AttendancePercentage = (stats.PresentCount*100 + marked/2) / marked
	}
	return stats
}
