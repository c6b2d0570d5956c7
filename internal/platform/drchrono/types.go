package drchrono

import (
	"encoding/json"
	"strings"
)

// Patient is the subset of the DrChrono patient record the packet pipeline
// needs. Fields missing from the payload decode to their zero values.
type Patient struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
	CellPhone   string `json:"cell_phone"`
}

// Name renders the patient as "Last, First" the way the balance report and
// the HCFA form expect it.
func (p *Patient) Name() string {
	name := strings.TrimSpace(p.LastName + ", " + p.FirstName)
	if name == "," {
		return "Unknown Patient"
	}
	return name
}

// PatientSummary is one row of a patients_summary search result.
type PatientSummary struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	ChartID     string `json:"chart_id"`
}

// ClinicalNote is an appointment's attached note document. The API is
// inconsistent about its shape: usually an object with a "pdf" URL, but
// occasionally a bare URL string. UnmarshalJSON accepts both, and the
// literal string "None" in the pdf field decodes as absent.
type ClinicalNote struct {
	PDF       string `json:"pdf"`
	UpdatedAt string `json:"updated_at"`
}

func (n *ClinicalNote) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if strings.HasPrefix(s, "http") {
			n.PDF = s
		}
		return nil
	}

	type alias ClinicalNote
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.PDF == "None" {
		a.PDF = ""
	}
	*n = ClinicalNote(a)
	return nil
}

// HasPDF reports whether the note carries a usable PDF URL.
func (n *ClinicalNote) HasPDF() bool {
	return n != nil && n.PDF != ""
}

// Appointment is a DrChrono appointment in verbose form. ScheduledTime is
// kept as the raw ISO string; the historical filter compares it
// lexicographically.
type Appointment struct {
	ID            int64         `json:"id"`
	ScheduledTime string        `json:"scheduled_time"`
	Date          string        `json:"date"`
	Reason        string        `json:"reason"`
	ICD10Codes    []string      `json:"icd10_codes"`
	ClinicalNote  *ClinicalNote `json:"clinical_note"`
}

// LineItem is one billable charge on an appointment. Monetary fields stay
// strings; callers parse them with exact decimal arithmetic.
type LineItem struct {
	AppointmentID     int64  `json:"appointment"`
	ServiceDate       string `json:"service_date"`
	Code              string `json:"code"`
	DiagnosisPointers string `json:"diagnosis_pointers"`
	Price             string `json:"price"`
	BalanceTotal      string `json:"balance_total"`
}

// User is the DrChrono account behind the bearer token.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Token is a response from the OAuth token endpoint.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	Scope        string `json:"scope"`
}
