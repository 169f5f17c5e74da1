package repository

import (
	"context"

	"gorm.io/gorm"

	"acadportal/backend/internal/model"
)

// FacultyBatchAssignmentRepository reads batch-level faculty availability.
type FacultyBatchAssignmentRepository interface {
	ListActiveByBatch(ctx context.Context, batchID string) ([]model.FacultyBatchAssignment, error)
}

type facultyBatchAssignmentRepo struct {
	db *gorm.DB
}

// NewFacultyBatchAssignmentRepo creates a FacultyBatchAssignmentRepository.
func NewFacultyBatchAssignmentRepo(db *gorm.DB) FacultyBatchAssignmentRepository {
	return &facultyBatchAssignmentRepo{db: db}
}

func (r *facultyBatchAssignmentRepo) ListActiveByBatch(ctx context.Context, batchID string) ([]model.FacultyBatchAssignment, error) {
	var assignments []model.FacultyBatchAssignment
	err := r.db.WithContext(ctx).
		Preload("Faculty").
		Where("batch_id = ? AND is_active = ?", batchID, true).
		Find(&assignments).Error
	return assignments, err
}

// FacultyModuleAssignmentRepository reads per-module faculty qualifications.
type FacultyModuleAssignmentRepository interface {
	ListActiveByFaculty(ctx context.Context, facultyID string) ([]model.FacultyModuleAssignment, error)
}

type facultyModuleAssignmentRepo struct {
	db *gorm.DB
}

// NewFacultyModuleAssignmentRepo creates a FacultyModuleAssignmentRepository.
func NewFacultyModuleAssignmentRepo(db *gorm.DB) FacultyModuleAssignmentRepository {
	return &facultyModuleAssignmentRepo{db: db}
}

func (r *facultyModuleAssignmentRepo) ListActiveByFaculty(ctx context.Context, facultyID string) ([]model.FacultyModuleAssignment, error) {
	var assignments []model.FacultyModuleAssignment
	err := r.db.WithContext(ctx).
		Where("faculty_id = ? AND is_active = ?", facultyID, true).
		Find(&assignments).Error
	return assignments, err
}
