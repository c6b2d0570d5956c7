package drchrono

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSearchPatients_SendsFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/patients_summary" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("expected bearer header, got %q", got)
		}
		q := r.URL.Query()
		if q.Get("last_name") != "Smith" || q.Get("page_size") != "50" {
			t.Errorf("unexpected query %v", q)
		}
		if q.Get("first_name") != "" {
			t.Error("empty first_name should be omitted")
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{{"id": 7, "first_name": "John", "last_name": "Smith"}},
			"next":    "https://example.com/next",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "id", "secret")
	patients, next, err := c.SearchPatients(context.Background(), "tok", SearchFilters{LastName: "Smith"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(patients) != 1 || patients[0].ID != 7 {
		t.Fatalf("unexpected patients: %v", patients)
	}
	if next != "https://example.com/next" {
		t.Errorf("unexpected next cursor: %s", next)
	}
}

func TestAppointments_VerbosePageParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("patient") != "42" || q.Get("verbose") != "true" || q.Get("page_size") != "50" {
			t.Errorf("unexpected query %v", q)
		}
		if q.Get("since") == "" {
			t.Error("expected since param")
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{"id": 1, "scheduled_time": "2024-01-05T10:00:00", "reason": "Back pain",
					"clinical_note": map[string]string{"pdf": "http://x/n.pdf"}},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "id", "secret")
	appts, err := c.Appointments(context.Background(), "tok", 42, mustTime(t, "2021-01-05T10:00:00"), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(appts) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(appts))
	}
	if !appts[0].ClinicalNote.HasPDF() {
		t.Error("expected clinical note PDF")
	}
}

func TestGet_NonOKIsRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(srv.URL, "id", "secret")
	_, err := c.Patient(context.Background(), "tok", 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if !StatusIn(err, http.StatusForbidden) {
		t.Errorf("expected RemoteError with 403, got %v", err)
	}
}

func TestRefresh_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/o/token/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if r.PostForm.Get("grant_type") != "refresh_token" {
			t.Errorf("unexpected grant_type %s", r.PostForm.Get("grant_type"))
		}
		if r.PostForm.Get("refresh_token") != "old-refresh" {
			t.Errorf("unexpected refresh_token %s", r.PostForm.Get("refresh_token"))
		}
		if r.PostForm.Get("client_id") != "id" || r.PostForm.Get("client_secret") != "secret" {
			t.Error("client credentials missing from form")
		}
		json.NewEncoder(w).Encode(Token{AccessToken: "new-access", RefreshToken: "new-refresh", ExpiresIn: 3600})
	}))
	defer srv.Close()

	c := New(srv.URL, "id", "secret")
	tok, err := c.Refresh(context.Background(), "old-refresh")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.AccessToken != "new-access" || tok.ExpiresIn != 3600 {
		t.Errorf("unexpected token: %+v", tok)
	}
}

func TestRefresh_RejectedIsRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, "id", "secret")
	_, err := c.Refresh(context.Background(), "stale")
	if !StatusIn(err, http.StatusBadRequest, http.StatusUnauthorized) {
		t.Fatalf("expected 400/401 RemoteError, got %v", err)
	}
}

func TestRefresh_TransportFailureIsRemoteError(t *testing.T) {
	c := New("http://127.0.0.1:1", "id", "secret")
	_, err := c.Refresh(context.Background(), "r")
	if err == nil {
		t.Fatal("expected error")
	}
	if StatusIn(err, http.StatusBadRequest, http.StatusUnauthorized) {
		t.Error("transport failure must not carry an HTTP status")
	}
}

func TestDownloadClinicalNote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("note download must not send Authorization")
		}
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()

	c := New(srv.URL, "id", "secret")
	data, err := c.DownloadClinicalNote(context.Background(), srv.URL+"/note.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data[:4]) != "%PDF" {
		t.Errorf("unexpected payload %q", data[:4])
	}
}

func TestClinicalNote_UnmarshalShapes(t *testing.T) {
	var a Appointment
	if err := json.Unmarshal([]byte(`{"id":1,"clinical_note":{"pdf":"http://x/n.pdf","updated_at":"2024-01-05T10:00:00"}}`), &a); err != nil {
		t.Fatal(err)
	}
	if !a.ClinicalNote.HasPDF() {
		t.Error("object-shaped note should carry PDF")
	}

	var b Appointment
	if err := json.Unmarshal([]byte(`{"id":2,"clinical_note":"http://x/raw.pdf"}`), &b); err != nil {
		t.Fatal(err)
	}
	if b.ClinicalNote.PDF != "http://x/raw.pdf" {
		t.Errorf("string-shaped note should carry PDF, got %q", b.ClinicalNote.PDF)
	}

	var c Appointment
	if err := json.Unmarshal([]byte(`{"id":3,"clinical_note":{"pdf":"None"}}`), &c); err != nil {
		t.Fatal(err)
	}
	if c.ClinicalNote.HasPDF() {
		t.Error(`literal "None" pdf should decode as absent`)
	}

	var d Appointment
	if err := json.Unmarshal([]byte(`{"id":4,"clinical_note":"not a url"}`), &d); err != nil {
		t.Fatal(err)
	}
	if d.ClinicalNote.HasPDF() {
		t.Error("non-http string note should decode as absent")
	}
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		t.Fatal(err)
	}
	return parsed
}
