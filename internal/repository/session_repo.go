package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"acadportal/backend/internal/model"
)

// SessionFilter narrows session listings.
type SessionFilter struct {
	BatchID   string
	FacultyID string
	DateFrom  *time.Time
	DateTo    *time.Time
	Status    string
}

// SessionRepository is the dated-session data-access interface.
type SessionRepository interface {
	BatchCreate(ctx context.Context, sessions []model.ClassSession) error
	GetByID(ctx context.Context, id string) (*model.ClassSession, error)
	List(ctx context.Context, filter SessionFilter) ([]model.ClassSession, error)
	// ListDatesBySlot returns the dates already materialized for a slot
	// within [from, to], backing idempotent expansion.
	ListDatesBySlot(ctx context.Context, slotID string, from, to time.Time) ([]time.Time, error)
	CountByTimeSlot(ctx context.Context, slotID string) (int64, error)
	Update(ctx context.Context, session *model.ClassSession) error
	Delete(ctx context.Context, id string) error
}

type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo creates a SessionRepository.
func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) BatchCreate(ctx context.Context, sessions []model.ClassSession) error {
	if len(sessions) == 0 {
		return nil
	}
	// sessions arrive with TimeSlot populated for response rendering; the
	// association rows themselves must never be written here
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&sessions).Error
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*model.ClassSession, error) {
	var session model.ClassSession
	err := r.db.WithContext(ctx).
		Preload("TimeSlot").
		Preload("TimeSlot.Batch").
		Preload("TimeSlot.Module").
		Preload("TimeSlot.Faculty").
		Where("session_id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) List(ctx context.Context, filter SessionFilter) ([]model.ClassSession, error) {
	var sessions []model.ClassSession
	db := r.db.WithContext(ctx).
		Joins("JOIN time_slots ON time_slots.time_slot_id = class_sessions.time_slot_id")

	if filter.BatchID != "" {
		db = db.Where("time_slots.batch_id = ?", filter.BatchID)
	}
	if filter.FacultyID != "" {
		db = db.Where("time_slots.faculty_id = ?", filter.FacultyID)
	}
	if filter.DateFrom != nil {
		db = db.Where("class_sessions.session_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		db = db.Where("class_sessions.session_date <= ?", *filter.DateTo)
	}
	if filter.Status != "" {
		db = db.Where("class_sessions.status = ?", filter.Status)
	}

	err := db.Preload("TimeSlot").
		Preload("TimeSlot.Batch").
		Preload("TimeSlot.Module").
		Preload("TimeSlot.Faculty").
		Order("class_sessions.session_date ASC, class_sessions.scheduled_start ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) ListDatesBySlot(ctx context.Context, slotID string, from, to time.Time) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&model.ClassSession{}).
		Where("time_slot_id = ? AND session_date BETWEEN ? AND ?", slotID, from, to).
		Pluck("session_date", &dates).Error
	return dates, err
}

func (r *sessionRepo) CountByTimeSlot(ctx context.Context, slotID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ClassSession{}).
		Where("time_slot_id = ?", slotID).
		Count(&count).Error
	return count, err
}

func (r *sessionRepo) Update(ctx context.Context, session *model.ClassSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", id).
		Delete(&model.ClassSession{}).Error
}
