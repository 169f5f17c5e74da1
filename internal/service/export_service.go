package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"acadportal/backend/internal/dto"
	"acadportal/backend/pkg/timeutil"
)

// ExportService renders session listings as downloadable artifacts: an Excel
// workbook for reporting and an iCalendar feed for calendar subscriptions.
type ExportService interface {
	SessionsXLSX(ctx context.Context, req *dto.SessionListRequest) (*bytes.Buffer, error)
	SessionsICS(ctx context.Context, req *dto.SessionListRequest) (string, error)
}

type exportService struct {
	sessions SessionService
	logger   *zap.Logger
}

// NewExportService creates an ExportService instance.
func NewExportService(sessions SessionService, logger *zap.Logger) ExportService {
	return &exportService{sessions: sessions, logger: logger}
}

const exportSheet = "Sessions"

func (s *exportService) SessionsXLSX(ctx context.Context, req *dto.SessionListRequest) (*bytes.Buffer, error) {
	sessions, err := s.sessions.List(ctx, req)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []string{"Date", "Day", "Start", "End", "Batch", "Module", "Faculty", "Status", "Attendance Marked"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, headerStyle); err != nil {
		return nil, err
	}

	for row, session := range sessions {
		values := []interface{}{
			session.SessionDate,
			weekdayName(session.SessionDate),
			session.ScheduledStart,
			session.ScheduledEnd,
			briefName(session.Batch),
			moduleName(session.Module),
			facultyName(session.Faculty),
			session.Status,
			session.AttendanceMarked,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "I", 16); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("write xlsx export failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("sessions exported to xlsx", zap.Int("rows", len(sessions)))
	return buf, nil
}

func (s *exportService) SessionsICS(ctx context.Context, req *dto.SessionListRequest) (string, error) {
	sessions, err := s.sessions.List(ctx, req)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//acadportal//scheduler//EN")

	for i := range sessions {
		session := &sessions[i]
		if session.Status == "CANCELLED" || session.Status == "RESCHEDULED" {
			continue // resolved occurrences stay out of subscribed calendars
		}

		start, end, err := sessionTimes(session)
		if err != nil {
			s.logger.Warn("skipping session with unparseable times in ics export",
				zap.String("session_id", session.ID), zap.Error(err))
			continue
		}

		event := cal.AddEvent(session.ID + "@acadportal")
		event.SetDtStampTime(time.Now())
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(icsSummary(session))
		if session.MeetingLink != "" {
			event.SetLocation(session.MeetingLink)
		}
		if session.Faculty != nil {
			event.SetDescription("Faculty: " + session.Faculty.Name)
		}
	}

	s.logger.Info("sessions exported to ics", zap.Int("sessions", len(sessions)))
	return cal.Serialize(), nil
}

func sessionTimes(session *dto.SessionResponse) (time.Time, time.Time, error) {
	day, err := time.Parse("2006-01-02", session.SessionDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	startMins, err := timeutil.MinutesOfDay(session.ScheduledStart)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endMins, err := timeutil.MinutesOfDay(session.ScheduledEnd)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := day.Add(time.Duration(startMins) * time.Minute)
	end := day.Add(time.Duration(endMins) * time.Minute)
	return start, end, nil
}

func icsSummary(session *dto.SessionResponse) string {
	module := moduleName(session.Module)
	batch := briefName(session.Batch)
	if module == "" && batch == "" {
		return "Class session"
	}
	return fmt.Sprintf("%s (%s)", module, batch)
}

func weekdayName(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return d.Weekday().String()
}

func briefName(b *dto.BatchBrief) string {
	if b == nil {
		return ""
	}
	return b.Name
}

func moduleName(m *dto.ModuleBrief) string {
	if m == nil {
		return ""
	}
	return m.Name
}

func facultyName(f *dto.FacultyBrief) string {
	if f == nil {
		return ""
	}
	return f.Name
}
