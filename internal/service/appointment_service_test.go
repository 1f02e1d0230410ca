package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkserve/backend/internal/config"
	"github.com/talkserve/backend/internal/domain"
	"github.com/talkserve/backend/internal/platform/calendar"
	"github.com/talkserve/backend/internal/service"
	apperrors "github.com/talkserve/backend/pkg/util"
)

type mockAppointmentRepo struct {
	appointments map[string]*domain.Appointment
	synced       map[string]string
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{
		appointments: make(map[string]*domain.Appointment),
		synced:       make(map[string]string),
	}
}

func (m *mockAppointmentRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	appt, ok := m.appointments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return appt, nil
}

func (m *mockAppointmentRepo) List(_ context.Context, limit, offset int) ([]domain.Appointment, error) {
	var out []domain.Appointment
	for _, appt := range m.appointments {
		out = append(out, *appt)
	}
	return out, nil
}

func (m *mockAppointmentRepo) MarkSynced(_ context.Context, id, eventID string) error {
	m.synced[id] = eventID
	return nil
}

func newConnectorServer(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "evt-1"})
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestSyncToCalendarUnconfigured(t *testing.T) {
	svc := service.NewAppointmentService(newMockAppointmentRepo(), calendar.NewClient(config.CalendarConfig{}))

	_, err := svc.SyncToCalendar(context.Background(), []string{"a1"})
	require.Error(t, err)
	assert.Equal(t, 503, apperrors.ToDomainError(err).HTTPStatus)
}

func TestSyncToCalendarBatch(t *testing.T) {
	srv, calls := newConnectorServer(t)
	repo := newMockAppointmentRepo()
	repo.appointments["a1"] = &domain.Appointment{
		ID: "a1", Date: "2026-09-02", Time: "14:30",
		CustomerName: "Dana", CustomerEmail: "dana@example.com",
	}
	repo.appointments["a2"] = &domain.Appointment{
		ID: "a2", Date: "next tuesday", Time: "noonish",
		CustomerName: "Kim",
	}
	repo.appointments["a3"] = &domain.Appointment{
		ID: "a3", Date: "2026-09-03",
		CustomerName: "Ravi",
	}

	svc := service.NewAppointmentService(repo, calendar.NewClient(config.CalendarConfig{
		Host:  srv.URL,
		Token: "test-token",
	}))

	result, err := svc.SyncToCalendar(context.Background(), []string{"a1", "a2", "a3", "missing"})
	require.NoError(t, err)

	assert.Equal(t, 2, result.SyncedCount)
	assert.Equal(t, 2, result.FailedCount)
	require.Len(t, result.Failures, 2)
	assert.Equal(t, "a2", result.Failures[0].AppointmentID)
	assert.Equal(t, "missing", result.Failures[1].AppointmentID)
	assert.Equal(t, "appointment not found", result.Failures[1].Reason)

	// only the parsable, existing appointments reached the connector
	assert.Equal(t, 2, *calls)
	assert.Equal(t, "evt-1", repo.synced["a1"])
	assert.Equal(t, "evt-1", repo.synced["a3"])
}

func TestSyncToCalendarAlreadySyncedSkipped(t *testing.T) {
	srv, calls := newConnectorServer(t)
	repo := newMockAppointmentRepo()
	eventID := "evt-old"
	repo.appointments["a1"] = &domain.Appointment{
		ID: "a1", Date: "2026-09-02", Time: "14:30",
		CalendarSynced: true, CalendarEventID: &eventID,
	}

	svc := service.NewAppointmentService(repo, calendar.NewClient(config.CalendarConfig{
		Host:  srv.URL,
		Token: "test-token",
	}))

	result, err := svc.SyncToCalendar(context.Background(), []string{"a1"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.SyncedCount)
	assert.Equal(t, 0, result.FailedCount)
	assert.Equal(t, 0, *calls)
}

func TestSyncToCalendarEmptyBatch(t *testing.T) {
	srv, _ := newConnectorServer(t)
	svc := service.NewAppointmentService(newMockAppointmentRepo(), calendar.NewClient(config.CalendarConfig{
		Host:  srv.URL,
		Token: "test-token",
	}))

	_, err := svc.SyncToCalendar(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}
