package search

import (
	"context"

	"github.com/chartpacket/chartpacket/internal/platform/auth"
	"github.com/chartpacket/chartpacket/internal/platform/drchrono"
)

// Searcher is the slice of the DrChrono client this package uses.
type Searcher interface {
	SearchPatients(ctx context.Context, token string, f drchrono.SearchFilters) ([]drchrono.PatientSummary, string, error)
}

type Service struct {
	ehr Searcher
}

func NewService(ehr Searcher) *Service {
	return &Service{ehr: ehr}
}

// Result is one page of matching patients.
type Result struct {
	Patients []drchrono.PatientSummary `json:"patients"`
	Next     string                    `json:"next,omitempty"`
}

// Patients runs a demographic search against DrChrono. A 401 or 403 from the
// API means the token the middleware handed us was revoked out from under
// us, so the caller is told to reconnect.
func (s *Service) Patients(ctx context.Context, token string, f Filters) (*Result, error) {
	if err := f.Normalize(); err != nil {
		return nil, err
	}

	patients, next, err := s.ehr.SearchPatients(ctx, token, drchrono.SearchFilters{
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		DateOfBirth: f.DateOfBirth,
		PageSize:    f.PageSize,
	})
	if err != nil {
		if drchrono.StatusIn(err, 401, 403) {
			return nil, &auth.Error{Reason: "drchrono rejected the access token", Err: err}
		}
		return nil, err
	}
	if patients == nil {
		patients = []drchrono.PatientSummary{}
	}
	return &Result{Patients: patients, Next: next}, nil
}
