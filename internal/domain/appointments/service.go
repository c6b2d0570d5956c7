package appointments

import (
	"context"
	"time"

	"github.com/chartpacket/chartpacket/internal/platform/auth"
	"github.com/chartpacket/chartpacket/internal/platform/drchrono"
)

const (
	lookback = 3 * 365 * 24 * time.Hour
	pageSize = 50
)

// Lister is the slice of the DrChrono client this package uses.
type Lister interface {
	Appointments(ctx context.Context, token string, patientID int64, since time.Time, pageSize int) ([]drchrono.Appointment, error)
}

type Service struct {
	ehr Lister
	now func() time.Time
}

func NewService(ehr Lister) *Service {
	return &Service{ehr: ehr, now: time.Now}
}

// Historical fetches roughly three years of a patient's appointments and
// narrows them to the past ones with clinical notes, newest first.
func (s *Service) Historical(ctx context.Context, token string, patientID int64) ([]drchrono.Appointment, error) {
	now := s.now()
	appts, err := s.ehr.Appointments(ctx, token, patientID, now.Add(-lookback), pageSize)
	if err != nil {
		if drchrono.StatusIn(err, 401, 403) {
			return nil, &auth.Error{Reason: "drchrono rejected the access token", Err: err}
		}
		return nil, err
	}
	return FilterHistorical(appts, now.Format("2006-01-02")), nil
}
