package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/talkserve/backend/internal/domain"
	"github.com/talkserve/backend/internal/platform/calendar"
	"github.com/talkserve/backend/internal/repository"
	apperrors "github.com/talkserve/backend/pkg/util"
)

// Accepted layouts for the free-text appointment date+time fields.
var appointmentLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02",
}

// AppointmentService lists externally-created appointments and pushes them to
// the calendar connector.
type AppointmentService struct {
	appointments repository.AppointmentRepository
	connector    *calendar.Client
}

// NewAppointmentService constructs the service.
func NewAppointmentService(appointments repository.AppointmentRepository, connector *calendar.Client) *AppointmentService {
	return &AppointmentService{appointments: appointments, connector: connector}
}

// SyncFailure records one appointment that could not be synced.
type SyncFailure struct {
	AppointmentID string `json:"appointmentId"`
	Reason        string `json:"reason"`
}

// SyncResult aggregates a calendar-sync batch.
type SyncResult struct {
	SyncedCount int           `json:"syncedCount"`
	FailedCount int           `json:"failedCount"`
	Failures    []SyncFailure `json:"failures"`
}

// ListAppointments returns the intake queue.
func (s *AppointmentService) ListAppointments(ctx context.Context, limit, offset int) ([]domain.Appointment, error) {
	result, err := s.appointments.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// SyncToCalendar pushes the selected appointments one at a time. Each failure
// is recorded per item and does not stop the batch; already-synced
// appointments are skipped.
func (s *AppointmentService) SyncToCalendar(ctx context.Context, appointmentIDs []string) (*SyncResult, error) {
	if s.connector == nil || !s.connector.Configured() {
		return nil, apperrors.NewUnavailable("calendar connector not configured")
	}
	if len(appointmentIDs) == 0 {
		return nil, apperrors.NewValidationError("appointment_ids required", nil)
	}

	result := &SyncResult{Failures: []SyncFailure{}}
	for _, id := range appointmentIDs {
		appt, err := s.appointments.GetByID(ctx, id)
		if err != nil {
			reason := "lookup failed"
			if errors.Is(err, pgx.ErrNoRows) {
				reason = "appointment not found"
			}
			result.FailedCount++
			result.Failures = append(result.Failures, SyncFailure{AppointmentID: id, Reason: reason})
			continue
		}
		if appt.CalendarSynced {
			result.SyncedCount++
			continue
		}

		startsAt, err := parseAppointmentTime(appt.Date, appt.Time)
		if err != nil {
			result.FailedCount++
			result.Failures = append(result.Failures, SyncFailure{AppointmentID: id, Reason: err.Error()})
			continue
		}

		eventID, err := s.connector.CreateEvent(ctx, calendar.Event{
			Title:     "Appointment: " + appt.CustomerName,
			StartsAt:  startsAt,
			Attendee:  appt.CustomerEmail,
			Reference: appt.ID,
		})
		if err != nil {
			result.FailedCount++
			result.Failures = append(result.Failures, SyncFailure{AppointmentID: id, Reason: err.Error()})
			continue
		}

		if err := s.appointments.MarkSynced(ctx, appt.ID, eventID); err != nil {
			result.FailedCount++
			result.Failures = append(result.Failures, SyncFailure{AppointmentID: id, Reason: "event created but flag update failed"})
			continue
		}
		result.SyncedCount++
	}
	return result, nil
}

func parseAppointmentTime(date, clock string) (time.Time, error) {
	candidate := strings.TrimSpace(date)
	if clock != "" {
		candidate = strings.TrimSpace(date + " " + clock)
	}
	for _, layout := range appointmentLayouts {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable appointment time %q", candidate)
}
