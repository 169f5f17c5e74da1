package repository

import (
	"context"

	"gorm.io/gorm"

	"acadportal/backend/internal/model"
)

// TimeSlotRepository is the recurring-template data-access interface.
type TimeSlotRepository interface {
	Create(ctx context.Context, slot *model.TimeSlot) error
	GetByID(ctx context.Context, id string) (*model.TimeSlot, error)
	List(ctx context.Context, batchID, facultyID string, dayOfWeek *int) ([]model.TimeSlot, error)
	// ListActiveByFacultyAndDay and ListActiveByBatchAndDay back the conflict
	// detector: only active, non-deleted slots can collide.
	ListActiveByFacultyAndDay(ctx context.Context, facultyID string, dayOfWeek int) ([]model.TimeSlot, error)
	ListActiveByBatchAndDay(ctx context.Context, batchID string, dayOfWeek int) ([]model.TimeSlot, error)
	// ListActiveForScope returns active slots optionally narrowed by batch
	// and/or faculty, used by session materialization.
	ListActiveForScope(ctx context.Context, batchID, facultyID string) ([]model.TimeSlot, error)
	Update(ctx context.Context, slot *model.TimeSlot) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type timeSlotRepo struct {
	db *gorm.DB
}

// NewTimeSlotRepo creates a TimeSlotRepository.
func NewTimeSlotRepo(db *gorm.DB) TimeSlotRepository {
	return &timeSlotRepo{db: db}
}

func (r *timeSlotRepo) Create(ctx context.Context, slot *model.TimeSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *timeSlotRepo) GetByID(ctx context.Context, id string) (*model.TimeSlot, error) {
	var slot model.TimeSlot
	err := r.db.WithContext(ctx).
		Preload("Batch").
		Preload("Module").
		Preload("Faculty").
		Where("time_slot_id = ?", id).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *timeSlotRepo) List(ctx context.Context, batchID, facultyID string, dayOfWeek *int) ([]model.TimeSlot, error) {
	var slots []model.TimeSlot
	db := r.db.WithContext(ctx)

	if batchID != "" {
		db = db.Where("batch_id = ?", batchID)
	}
	if facultyID != "" {
		db = db.Where("faculty_id = ?", facultyID)
	}
	if dayOfWeek != nil {
		db = db.Where("day_of_week = ?", *dayOfWeek)
	}

	err := db.Preload("Batch").
		Preload("Module").
		Preload("Faculty").
		Order("day_of_week ASC, start_time ASC").
		Find(&slots).Error
	return slots, err
}

func (r *timeSlotRepo) ListActiveByFacultyAndDay(ctx context.Context, facultyID string, dayOfWeek int) ([]model.TimeSlot, error) {
	var slots []model.TimeSlot
	err := r.db.WithContext(ctx).
		Preload("Batch").
		Preload("Module").
		Where("faculty_id = ? AND day_of_week = ? AND is_active = ?", facultyID, dayOfWeek, true).
		Find(&slots).Error
	return slots, err
}

func (r *timeSlotRepo) ListActiveByBatchAndDay(ctx context.Context, batchID string, dayOfWeek int) ([]model.TimeSlot, error) {
	var slots []model.TimeSlot
	err := r.db.WithContext(ctx).
		Preload("Batch").
		Preload("Module").
		Where("batch_id = ? AND day_of_week = ? AND is_active = ?", batchID, dayOfWeek, true).
		Find(&slots).Error
	return slots, err
}

func (r *timeSlotRepo) ListActiveForScope(ctx context.Context, batchID, facultyID string) ([]model.TimeSlot, error) {
	var slots []model.TimeSlot
	db := r.db.WithContext(ctx).Where("is_active = ?", true)
	if batchID != "" {
		db = db.Where("batch_id = ?", batchID)
	}
	if facultyID != "" {
		db = db.Where("faculty_id = ?", facultyID)
	}
	err := db.Preload("Batch").
		Preload("Module").
		Preload("Faculty").
		Find(&slots).Error
	return slots, err
}

func (r *timeSlotRepo) Update(ctx context.Context, slot *model.TimeSlot) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

func (r *timeSlotRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.TimeSlot{}).
		Where("time_slot_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
