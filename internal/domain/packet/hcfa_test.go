package packet

import (
	"bytes"
	"testing"
)

func TestSplitAmount(t *testing.T) {
	tests := []struct {
		in          string
		wantDollars string
		wantCents   string
	}{
		{"150.00", "150", "00"},
		{"80.5", "80", "50"},
		{"99", "99", "00"},
		{"12.345", "12", "34"},
		{"0.07", "0", "07"},
	}
	for _, tt := range tests {
		dollars, cents := splitAmount(tt.in)
		if dollars != tt.wantDollars || cents != tt.wantCents {
			t.Errorf("splitAmount(%q) = %q, %q, want %q, %q", tt.in, dollars, cents, tt.wantDollars, tt.wantCents)
		}
	}
}

func TestSlashDate(t *testing.T) {
	if got := slashDate("2024-03-10"); got != "03/10/2024" {
		t.Errorf("slashDate = %q, want 03/10/2024", got)
	}
	if got := slashDate(""); got != "" {
		t.Errorf("slashDate of empty = %q", got)
	}
}

func TestTotalCharge(t *testing.T) {
	if got := totalCharge([]string{"150.00", "80.50"}); got != "230.50" {
		t.Errorf("totalCharge = %q, want 230.50", got)
	}
	if got := totalCharge([]string{"150.00", "garbage"}); got != "150.00" {
		t.Errorf("totalCharge with bad entry = %q, want 150.00", got)
	}
	if got := totalCharge(nil); got != "0.00" {
		t.Errorf("totalCharge of nothing = %q, want 0.00", got)
	}
}

func TestICDPositionWrapsAfterFour(t *testing.T) {
	first := icdPosition(0)
	if first.X != 50 || first.Y != 484 {
		t.Fatalf("first code at (%v, %v), want (50, 484)", first.X, first.Y)
	}

	// Fourth column of the first line.
	p3 := icdPosition(3)
	if p3.X != 50+93*3 || p3.Y != 484 {
		t.Errorf("code 3 at (%v, %v)", p3.X, p3.Y)
	}

	// Fifth code wraps to a new line one step down.
	p4 := icdPosition(4)
	if p4.Y != 496 {
		t.Errorf("code 4 Y = %v, want 496", p4.Y)
	}
	if p4.X != 50+93*4-373 {
		t.Errorf("code 4 X = %v, want %v", p4.X, 50+93*4-373)
	}
	if p4.X >= p3.X {
		t.Errorf("wrapped code did not return toward the left edge: %v >= %v", p4.X, p3.X)
	}
}

func TestFillerOverlayOnly(t *testing.T) {
	filler := &Filler{} // no template, draw on a blank page
	data := &FormData{
		PatientName:    "Doe, Jane",
		PatientDOB:     "1980-02-29",
		PatientGender:  "Female",
		PatientAddress: "1 Main St",
		PatientCity:    "Duluth",
		PatientState:   "GA",
		PatientZip:     "30096",
		PatientPhone:   "678 404-7643",
		SignatureDate:  "2024-03-10",
		ICD10Codes:     []string{"M54.5", "M51.26", "M99.03", "G89.29", "M62.830"},
		ServiceDates:   []string{"2024-01-05", "2024-01-05"},
		Codes:          []string{"99213", "97110"},
		DiagnosisPointers: []string{"a", "a"},
		Charges:           []string{"150.00", "80.50"},
	}

	pdf, err := filler.Fill(data)
	if err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header")
	}
}

func TestFillerToleratesSparseData(t *testing.T) {
	filler := &Filler{}
	pdf, err := filler.Fill(&FormData{PatientName: "Unknown Patient", PatientPhone: "000 000-0000"})
	if err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header")
	}
}
