package repository

import (
	"context"

	"gorm.io/gorm"

	"acadportal/backend/internal/model"
)

// ModuleRepository is the course-module data-access interface.
type ModuleRepository interface {
	GetByID(ctx context.Context, id string) (*model.Module, error)
	ListActiveByCourse(ctx context.Context, courseID string) ([]model.Module, error)
	ListActive(ctx context.Context) ([]model.Module, error)
}

type moduleRepo struct {
	db *gorm.DB
}

// NewModuleRepo creates a ModuleRepository.
func NewModuleRepo(db *gorm.DB) ModuleRepository {
	return &moduleRepo{db: db}
}

func (r *moduleRepo) GetByID(ctx context.Context, id string) (*model.Module, error) {
	var m model.Module
	if err := r.db.WithContext(ctx).Where("module_id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *moduleRepo) ListActiveByCourse(ctx context.Context, courseID string) ([]model.Module, error) {
	var modules []model.Module
	err := r.db.WithContext(ctx).
		Where("course_id = ? AND is_active = ?", courseID, true).
		Order("code ASC").
		Find(&modules).Error
	return modules, err
}

func (r *moduleRepo) ListActive(ctx context.Context) ([]model.Module, error) {
	var modules []model.Module
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("code ASC").
		Find(&modules).Error
	return modules, err
}
