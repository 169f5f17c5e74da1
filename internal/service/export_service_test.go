package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"acadportal/backend/internal/dto"
)

type stubSessionService struct {
	sessions []dto.SessionResponse
	err      error
}

func (s *stubSessionService) Materialize(_ context.Context, _ *dto.MaterializeRequest, _ string) (*dto.MaterializeResponse, error) {
	return nil, nil
}
func (s *stubSessionService) GetByID(_ context.Context, _ string) (*dto.SessionResponse, error) {
	return nil, nil
}
func (s *stubSessionService) List(_ context.Context, _ *dto.SessionListRequest) ([]dto.SessionResponse, error) {
	return s.sessions, s.err
}
func (s *stubSessionService) UpdateStatus(_ context.Context, _ string, _ *dto.UpdateSessionStatusRequest, _ string) (*dto.SessionResponse, error) {
	return nil, nil
}
func (s *stubSessionService) Delete(_ context.Context, _ string) error {
	return nil
}

func exportFixture() []dto.SessionResponse {
	return []dto.SessionResponse{
		{
			ID:             "sess-1",
			TimeSlotID:     "slot-1",
			Batch:          &dto.BatchBrief{ID: "batch-1", Name: "Fall Cohort"},
			Module:         &dto.ModuleBrief{ID: "mod-1", Name: "Algorithms"},
			Faculty:        &dto.FacultyBrief{ID: "fac-1", Name: "Dana Faculty"},
			SessionDate:    "2026-09-07",
			ScheduledStart: "09:00",
			ScheduledEnd:   "10:30",
			Status:         "SCHEDULED",
		},
		{
			ID:             "sess-2",
			TimeSlotID:     "slot-1",
			SessionDate:    "2026-09-14",
			ScheduledStart: "09:00",
			ScheduledEnd:   "10:30",
			Status:         "CANCELLED",
		},
	}
}

func TestExportService_SessionsXLSX(t *testing.T) {
	svc := NewExportService(&stubSessionService{sessions: exportFixture()}, zap.NewNop())

	buf, err := svc.SessionsXLSX(context.Background(), &dto.SessionListRequest{})
	if err != nil {
		t.Fatalf("SessionsXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("exported workbook must be readable: %v", err)
	}
	defer f.Close()

	if header, _ := f.GetCellValue("Sessions", "A1"); header != "Date" {
		t.Errorf("expected Date header, got %q", header)
	}
	if date, _ := f.GetCellValue("Sessions", "A2"); date != "2026-09-07" {
		t.Errorf("expected first session date in row 2, got %q", date)
	}
	if batch, _ := f.GetCellValue("Sessions", "E2"); batch != "Fall Cohort" {
		t.Errorf("expected batch name in row 2, got %q", batch)
	}
}

func TestExportService_SessionsICS_ExcludesResolvedSessions(t *testing.T) {
	svc := NewExportService(&stubSessionService{sessions: exportFixture()}, zap.NewNop())

	out, err := svc.SessionsICS(context.Background(), &dto.SessionListRequest{})
	if err != nil {
		t.Fatalf("SessionsICS failed: %v", err)
	}

	if !strings.Contains(out, "BEGIN:VCALENDAR") {
		t.Error("output must be an iCalendar document")
	}
	if !strings.Contains(out, "sess-1@acadportal") {
		t.Error("scheduled session must appear in the feed")
	}
	if strings.Contains(out, "sess-2@acadportal") {
		t.Error("cancelled session must stay out of the feed")
	}
	if !strings.Contains(out, "Algorithms (Fall Cohort)") {
		t.Error("event summary must name the module and batch")
	}
}

func TestExportService_ListErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	svc := NewExportService(&stubSessionService{err: boom}, zap.NewNop())

	if _, err := svc.SessionsXLSX(context.Background(), &dto.SessionListRequest{}); !errors.Is(err, boom) {
		t.Errorf("xlsx export must surface the listing error, got %v", err)
	}
	if _, err := svc.SessionsICS(context.Background(), &dto.SessionListRequest{}); !errors.Is(err, boom) {
		t.Errorf("ics export must surface the listing error, got %v", err)
	}
}
