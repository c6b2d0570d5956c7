package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/chartpacket/chartpacket/internal/platform/auth"
	"github.com/chartpacket/chartpacket/internal/platform/drchrono"
)

func TestFiltersNormalize(t *testing.T) {
	tests := []struct {
		name    string
		in      Filters
		wantDOB string
		wantErr bool
	}{
		{"last name only", Filters{LastName: "Smith"}, "", false},
		{"all blank", Filters{FirstName: "  ", LastName: ""}, "", true},
		{"iso dob passes through", Filters{DateOfBirth: "1980-02-29"}, "1980-02-29", false},
		{"us dob converted", Filters{DateOfBirth: "02/29/1980"}, "1980-02-29", false},
		{"short us dob converted", Filters{DateOfBirth: "2/9/1980"}, "1980-02-09", false},
		{"garbage dob rejected", Filters{DateOfBirth: "Feb 29 1980"}, "", true},
		{"whitespace trimmed", Filters{FirstName: "  Jane "}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Normalize()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Normalize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("error = %T, want *ValidationError", err)
				}
				return
			}
			if tt.in.DateOfBirth != tt.wantDOB {
				t.Errorf("DateOfBirth = %q, want %q", tt.in.DateOfBirth, tt.wantDOB)
			}
		})
	}
}

type mockSearcher struct {
	gotFilters drchrono.SearchFilters
	patients   []drchrono.PatientSummary
	err        error
}

func (m *mockSearcher) SearchPatients(_ context.Context, _ string, f drchrono.SearchFilters) ([]drchrono.PatientSummary, string, error) {
	m.gotFilters = f
	return m.patients, "", m.err
}

func TestServicePatientsForwardsNormalizedFilters(t *testing.T) {
	ehr := &mockSearcher{patients: []drchrono.PatientSummary{{ID: 7, FirstName: "Jane", LastName: "Doe"}}}
	svc := NewService(ehr)

	result, err := svc.Patients(context.Background(), "tok", Filters{LastName: " Doe ", DateOfBirth: "01/02/1990"})
	if err != nil {
		t.Fatalf("Patients() error = %v", err)
	}
	if ehr.gotFilters.LastName != "Doe" {
		t.Errorf("forwarded last name = %q, want Doe", ehr.gotFilters.LastName)
	}
	if ehr.gotFilters.DateOfBirth != "1990-01-02" {
		t.Errorf("forwarded dob = %q, want 1990-01-02", ehr.gotFilters.DateOfBirth)
	}
	if len(result.Patients) != 1 || result.Patients[0].ID != 7 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestServicePatientsRevokedToken(t *testing.T) {
	ehr := &mockSearcher{err: &drchrono.RemoteError{Op: "search patients", StatusCode: 401}}
	svc := NewService(ehr)

	_, err := svc.Patients(context.Background(), "tok", Filters{LastName: "Doe"})
	var ae *auth.Error
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v, want *auth.Error", err)
	}
}

func TestServicePatientsEmptyPage(t *testing.T) {
	svc := NewService(&mockSearcher{})

	result, err := svc.Patients(context.Background(), "tok", Filters{LastName: "Nobody"})
	if err != nil {
		t.Fatalf("Patients() error = %v", err)
	}
	if result.Patients == nil || len(result.Patients) != 0 {
		t.Errorf("Patients = %v, want empty non-nil slice", result.Patients)
	}
}

func TestHandlerSearch(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		searcher   *mockSearcher
		wantStatus int
	}{
		{
			name:       "ok",
			body:       `{"last_name":"Doe"}`,
			searcher:   &mockSearcher{patients: []drchrono.PatientSummary{{ID: 1}}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "no filters",
			body:       `{}`,
			searcher:   &mockSearcher{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "revoked token",
			body:       `{"last_name":"Doe"}`,
			searcher:   &mockSearcher{err: &drchrono.RemoteError{StatusCode: 403}},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "remote outage",
			body:       `{"last_name":"Doe"}`,
			searcher:   &mockSearcher{err: errors.New("boom")},
			wantStatus: http.StatusBadGateway,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/patients/search", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			h := NewHandler(NewService(tt.searcher))
			err := h.Search(c)
			if err != nil {
				var he *echo.HTTPError
				if !errors.As(err, &he) {
					t.Fatalf("handler error = %v", err)
				}
				if he.Code != tt.wantStatus {
					t.Fatalf("status = %d, want %d", he.Code, tt.wantStatus)
				}
				return
			}
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus == http.StatusUnauthorized {
				var body map[string]string
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("decode body: %v", err)
				}
				if body["reauth_url"] != auth.ReauthPath {
					t.Errorf("reauth_url = %q, want %q", body["reauth_url"], auth.ReauthPath)
				}
			}
		})
	}
}
