package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chartpacket/chartpacket/internal/platform/auth"
	"github.com/chartpacket/chartpacket/internal/platform/drchrono"
)

type mockLister struct {
	gotPatient  int64
	gotSince    time.Time
	gotPageSize int
	appts       []drchrono.Appointment
	err         error
}

func (m *mockLister) Appointments(_ context.Context, _ string, patientID int64, since time.Time, pageSize int) ([]drchrono.Appointment, error) {
	m.gotPatient = patientID
	m.gotSince = since
	m.gotPageSize = pageSize
	return m.appts, m.err
}

func TestServiceHistoricalLookbackWindow(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	ehr := &mockLister{appts: []drchrono.Appointment{
		{ID: 1, ScheduledTime: "2024-06-01T10:00:00", ClinicalNote: &drchrono.ClinicalNote{PDF: "http://x/n.pdf"}},
	}}
	svc := NewService(ehr)
	svc.now = func() time.Time { return now }

	got, err := svc.Historical(context.Background(), "tok", 42)
	if err != nil {
		t.Fatalf("Historical() error = %v", err)
	}
	if ehr.gotPatient != 42 {
		t.Errorf("patient = %d, want 42", ehr.gotPatient)
	}
	wantSince := now.Add(-3 * 365 * 24 * time.Hour)
	if !ehr.gotSince.Equal(wantSince) {
		t.Errorf("since = %v, want %v", ehr.gotSince, wantSince)
	}
	if ehr.gotPageSize != 50 {
		t.Errorf("page size = %d, want 50", ehr.gotPageSize)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("got %+v, want the single past appointment", got)
	}
}

func TestServiceHistoricalRevokedToken(t *testing.T) {
	svc := NewService(&mockLister{err: &drchrono.RemoteError{Op: "list appointments", StatusCode: 403}})

	_, err := svc.Historical(context.Background(), "tok", 42)
	var ae *auth.Error
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v, want *auth.Error", err)
	}
}

func TestServiceHistoricalRemoteOutage(t *testing.T) {
	svc := NewService(&mockLister{err: &drchrono.RemoteError{Op: "list appointments", StatusCode: 500}})

	_, err := svc.Historical(context.Background(), "tok", 42)
	var ae *auth.Error
	if errors.As(err, &ae) {
		t.Fatalf("server error mapped to auth error: %v", err)
	}
	var re *drchrono.RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("error = %v, want *drchrono.RemoteError", err)
	}
}
