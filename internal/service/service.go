package service

import (
	"go.uber.org/zap"

	"acadportal/backend/config"
	"acadportal/backend/internal/repository"
	"acadportal/backend/pkg/jwt"
	"acadportal/backend/pkg/redis"
)

// Service aggregates every business service.
type Service struct {
	Auth        AuthService
	Batch       BatchService
	Eligibility EligibilityService
	Conflict    ConflictService
	TimeSlot    TimeSlotService
	Session     SessionService
	Attendance  AttendanceService
	Export      ExportService
}

// NewService wires the service layer. rdb may be nil when redis is down;
// token revocation then degrades as documented on AuthService.
func NewService(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *Service {
	eligibility := NewEligibilityService(repo, logger)
	conflict := NewConflictService(repo, logger)
	session := NewSessionService(&cfg.Scheduling, repo, logger)

	return &Service{
		Auth:        NewAuthService(&cfg.Auth, repo, jwtMgr, rdb, logger),
		Batch:       NewBatchService(repo, logger),
		Eligibility: eligibility,
		Conflict:    conflict,
		TimeSlot:    NewTimeSlotService(repo, eligibility, conflict, logger),
		Session:     session,
		Attendance:  NewAttendanceService(&cfg.Scheduling, repo, logger),
		Export:      NewExportService(session, logger),
	}
}
