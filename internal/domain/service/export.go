package service

import (
	"bytes"
	"context"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/thalyssonDEV/EventSync/internal/domain/common/errorz"
	"github.com/thalyssonDEV/EventSync/internal/domain/entity"
	"github.com/thalyssonDEV/EventSync/internal/domain/utils/calendar"
	"github.com/thalyssonDEV/EventSync/pkg/logger"
)

// ExportService produces downloadable artifacts: the organizer's
// attendee spreadsheet and the public calendar file.
type ExportService struct {
	logger        *logger.Logger
	events        reviewEventStorage
	registrations registrationListStorage
}

type registrationListStorage interface {
	GetByEventID(ctx context.Context, eventID string) ([]entity.Registration, error)
}

func NewExportService(log *logger.Logger, events reviewEventStorage, registrations registrationListStorage) *ExportService {
	return &ExportService{
		logger:        log,
		events:        events,
		registrations: registrations,
	}
}

// RegistrationsXLSX builds the attendee spreadsheet for an event. Only
// the event's organizer may export it.
func (s *ExportService) RegistrationsXLSX(ctx context.Context, actor *entity.User, eventID string) (*bytes.Buffer, error) {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != actor.ID {
		return nil, errorz.ErrForbidden
	}

	registrations, err := s.registrations.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return registrationsToXLSX(registrations)
}

func registrationsToXLSX(registrations []entity.Registration) (*bytes.Buffer, error) {
	f := excelize.NewFile()

	sheet := "Sheet1"
	_ = f.SetCellValue(sheet, "A1", "Name")
	_ = f.SetCellValue(sheet, "B1", "Email")
	_ = f.SetCellValue(sheet, "C1", "Status")
	_ = f.SetCellValue(sheet, "D1", "Checked in")
	_ = f.SetCellValue(sheet, "E1", "Check-ins")
	for i, registration := range registrations {
		row := strconv.Itoa(i + 2)
		_ = f.SetCellValue(sheet, "A"+row, registration.User.FullName())
		_ = f.SetCellValue(sheet, "B"+row, registration.User.Email)
		_ = f.SetCellValue(sheet, "C"+row, string(registration.Status))
		_ = f.SetCellValue(sheet, "D"+row, registration.CheckedIn)
		_ = f.SetCellValue(sheet, "E"+row, registration.CheckinsCount)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}

// EventICS serializes the event to iCalendar format. Any caller may
// export a published event.
func (s *ExportService) EventICS(ctx context.Context, eventID string) ([]byte, error) {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status == entity.EventStatusDraft {
		return nil, errorz.ErrNotFound
	}
	return calendar.ExportEventToICS(event)
}
