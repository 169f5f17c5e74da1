package repository

import (
	"context"

	"gorm.io/gorm"

	"acadportal/backend/internal/model"
)

// EnrollmentRepository reads batch rosters.
type EnrollmentRepository interface {
	ListActiveByBatch(ctx context.Context, batchID string) ([]model.Enrollment, error)
}

type enrollmentRepo struct {
	db *gorm.DB
}

// NewEnrollmentRepo creates an EnrollmentRepository.
func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) ListActiveByBatch(ctx context.Context, batchID string) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("batch_id = ? AND is_active = ?", batchID, true).
		Find(&enrollments).Error
	return enrollments, err
}
