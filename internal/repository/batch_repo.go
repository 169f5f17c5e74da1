package repository

import (
	"context"

	"gorm.io/gorm"

	"acadportal/backend/internal/model"
)

// BatchRepository is the batch data-access interface.
type BatchRepository interface {
	GetByID(ctx context.Context, id string) (*model.Batch, error)
	List(ctx context.Context, courseID string, active *bool) ([]model.Batch, error)
}

type batchRepo struct {
	db *gorm.DB
}

// NewBatchRepo creates a BatchRepository.
func NewBatchRepo(db *gorm.DB) BatchRepository {
	return &batchRepo{db: db}
}

func (r *batchRepo) GetByID(ctx context.Context, id string) (*model.Batch, error) {
	var b model.Batch
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("batch_id = ?", id).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *batchRepo) List(ctx context.Context, courseID string, active *bool) ([]model.Batch, error) {
	var batches []model.Batch
	db := r.db.WithContext(ctx)
	if courseID != "" {
		db = db.Where("course_id = ?", courseID)
	}
	if active != nil {
		db = db.Where("is_active = ?", *active)
	}
	err := db.Preload("Course").Order("start_date DESC").Find(&batches).Error
	return batches, err
}
