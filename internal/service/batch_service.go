package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"acadportal/backend/internal/dto"
	"acadportal/backend/internal/model"
	"acadportal/backend/internal/repository"
)

// BatchService exposes batch reads for the scheduling screens.
type BatchService interface {
	GetByID(ctx context.Context, id string) (*dto.BatchResponse, error)
	List(ctx context.Context, req *dto.BatchListRequest) ([]dto.BatchResponse, error)
}

type batchService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBatchService creates a BatchService instance.
func NewBatchService(repo *repository.Repository, logger *zap.Logger) BatchService {
	return &batchService{repo: repo, logger: logger}
}

func (s *batchService) GetByID(ctx context.Context, id string) (*dto.BatchResponse, error) {
	batch, err := s.repo.Batch.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		s.logger.Error("get batch failed", zap.Error(err))
		return nil, err
	}
	return toBatchResponse(batch), nil
}

func (s *batchService) List(ctx context.Context, req *dto.BatchListRequest) ([]dto.BatchResponse, error) {
	batches, err := s.repo.Batch.List(ctx, req.CourseID, req.Active)
	if err != nil {
		s.logger.Error("list batches failed", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.BatchResponse, 0, len(batches))
	for i := range batches {
		resp = append(resp, *toBatchResponse(&batches[i]))
	}
	return resp, nil
}

func toBatchResponse(batch *model.Batch) *dto.BatchResponse {
	resp := &dto.BatchResponse{
		ID:          batch.BatchID,
		CourseID:    batch.CourseID,
		Name:        batch.Name,
		StartDate:   batch.StartDate.Format("2006-01-02"),
		MeetingLink: batch.MeetingLink,
		IsActive:    batch.IsActive,
		CreatedAt:   batch.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   batch.UpdatedAt.Format(time.RFC3339),
	}
	if batch.Course != nil {
		resp.CourseName = batch.Course.Name
	}
	return resp
}
