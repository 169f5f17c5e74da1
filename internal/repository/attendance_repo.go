package repository

import (
	"context"

	"gorm.io/gorm"

	"acadportal/backend/internal/model"
)

// AttendanceRepository is the attendance data-access interface.
type AttendanceRepository interface {
	ListBySession(ctx context.Context, sessionID string) ([]model.AttendanceRecord, error)
	// SaveWithSession upserts records keyed by (session, student) and writes
	// the session row in the same transaction, so attendance save and the
	// COMPLETED transition commit or fail together. Returns separate
	// created/updated counts.
	SaveWithSession(ctx context.Context, session *model.ClassSession, records []model.AttendanceRecord) (created, updated int, err error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo creates an AttendanceRepository.
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) ListBySession(ctx context.Context, sessionID string) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) SaveWithSession(ctx context.Context, session *model.ClassSession, records []model.AttendanceRecord) (int, int, error) {
	var created, updated int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range records {
			rec := &records[i]

			var existing model.AttendanceRecord
			err := tx.Where("session_id = ? AND student_id = ?", rec.SessionID, rec.StudentID).
				First(&existing).Error
			switch {
			case err == nil:
				existing.Status = rec.Status
				existing.MarkedBy = rec.MarkedBy
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
				updated++
			case err == gorm.ErrRecordNotFound:
				if err := tx.Create(rec).Error; err != nil {
					return err
				}
				created++
			default:
				return err
			}
		}

		return tx.Save(session).Error
	})
	if err != nil {
		return 0, 0, err
	}

	return created, updated, nil
}
