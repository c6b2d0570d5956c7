// Package search finds patients by demographics through the DrChrono
// patients_summary endpoint.
package search

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError marks a request the caller can fix; handlers answer 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Filters are the demographic criteria for a patient search. At least one
// field must be set.
type Filters struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	PageSize    int    `json:"page_size"`
}

// dobLayouts are the accepted spellings of a date of birth, tried in order.
var dobLayouts = []string{"2006-01-02", "01/02/2006", "1/2/2006"}

// Normalize trims the filters, converts the date of birth to YYYY-MM-DD
// and verifies that at least one criterion remains.
func (f *Filters) Normalize() error {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.DateOfBirth = strings.TrimSpace(f.DateOfBirth)

	if f.FirstName == "" && f.LastName == "" && f.DateOfBirth == "" {
		return &ValidationError{Field: "filters", Message: "at least one of first_name, last_name or date_of_birth is required"}
	}

	if f.DateOfBirth != "" {
		parsed, err := parseDOB(f.DateOfBirth)
		if err != nil {
			return &ValidationError{Field: "date_of_birth", Message: "must be YYYY-MM-DD or MM/DD/YYYY"}
		}
		f.DateOfBirth = parsed.Format("2006-01-02")
	}
	return nil
}

func parseDOB(s string) (time.Time, error) {
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
