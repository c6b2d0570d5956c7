package packet

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/chartpacket/chartpacket/internal/domain/appointments"
	"github.com/chartpacket/chartpacket/internal/platform/auth"
	"github.com/chartpacket/chartpacket/internal/platform/drchrono"
)

const (
	defaultProviderName = "Emily Kurokawa"

	lookback = 3 * 365 * 24 * time.Hour
	pageSize = 50
)

// EHRClient is the slice of the DrChrono client the packet pipeline uses.
type EHRClient interface {
	Patient(ctx context.Context, token string, id int64) (*drchrono.Patient, error)
	Appointments(ctx context.Context, token string, patientID int64, since time.Time, pageSize int) ([]drchrono.Appointment, error)
	Appointment(ctx context.Context, token string, id int64) (*drchrono.Appointment, error)
	LineItems(ctx context.Context, token string, appointmentID int64) ([]drchrono.LineItem, error)
	DownloadClinicalNote(ctx context.Context, noteURL string) ([]byte, error)
}

type Service struct {
	ehr      EHRClient
	filler   *Filler
	provider string
	now      func() time.Time
}

func NewService(ehr EHRClient, filler *Filler) *Service {
	return &Service{ehr: ehr, filler: filler, provider: defaultProviderName, now: time.Now}
}

// Packet is the assembled download plus the warnings accumulated for the
// sections that had to be skipped.
type Packet struct {
	PDF      []byte
	Filename string
	Warnings []string
}

// Build runs the whole pipeline for one patient: balance report first, then
// each selected appointment's clinical note and filled claim form, in
// reverse of the order selected, merged into one PDF. Failures on any one
// sub-resource degrade to a skipped section plus a warning; only a revoked
// token or a completely unmergeable result aborts.
func (s *Service) Build(ctx context.Context, token string, patientID int64, selectedIDs []int64) (*Packet, error) {
	if len(selectedIDs) == 0 {
		return nil, fmt.Errorf("build packet: no appointments selected")
	}

	var warnings []string
	warn := func(format string, args ...interface{}) {
		msg := fmt.Sprintf(format, args...)
		warnings = append(warnings, msg)
		log.Warn().Int64("patient_id", patientID).Msg(msg)
	}

	patient, err := s.ehr.Patient(ctx, token, patientID)
	if err != nil {
		if drchrono.StatusIn(err, 401, 403) {
			return nil, &auth.Error{Reason: "drchrono rejected the access token", Err: err}
		}
		warn("could not fetch patient %d, the report header will be incomplete", patientID)
		patient = &drchrono.Patient{ID: patientID}
	}

	balance, err := s.buildBalanceReport(ctx, token, patient, warn)
	if err != nil {
		return nil, err
	}
	docs := [][]byte{balance}

	// Selected appointments go in reverse of the order they were picked.
	for i := len(selectedIDs) - 1; i >= 0; i-- {
		apptID := selectedIDs[i]

		appt, err := s.ehr.Appointment(ctx, token, apptID)
		if err != nil {
			if drchrono.StatusIn(err, 401, 403) {
				return nil, &auth.Error{Reason: "drchrono rejected the access token", Err: err}
			}
			warn("could not fetch appointment %d - skipped", apptID)
			continue
		}

		docs = append(docs, s.clinicalNote(ctx, appt, warn))

		items, err := s.ehr.LineItems(ctx, token, apptID)
		if err != nil {
			if drchrono.StatusIn(err, 401, 403) {
				return nil, &auth.Error{Reason: "drchrono rejected the access token", Err: err}
			}
			warn("could not fetch charges for appointment %d, its claim form has no charge rows", apptID)
			items = nil
		}

		form, err := s.filler.Fill(BuildFormData(patient, appt, items))
		if err != nil {
			warn("could not fill the claim form for appointment %d - skipped", apptID)
			continue
		}
		docs = append(docs, form)
	}

	merged, err := Assemble(docs)
	if err != nil {
		return nil, err
	}

	return &Packet{
		PDF:      merged,
		Filename: fmt.Sprintf("Patient_%s_%s_REPORT.pdf", patient.FirstName, patient.LastName),
		Warnings: warnings,
	}, nil
}

// buildBalanceReport gathers three years of noted appointments and their
// line items into the account-balance PDF.
func (s *Service) buildBalanceReport(ctx context.Context, token string, patient *drchrono.Patient, warn func(string, ...interface{})) ([]byte, error) {
	now := s.now()

	appts, err := s.ehr.Appointments(ctx, token, patient.ID, now.Add(-lookback), pageSize)
	if err != nil {
		if drchrono.StatusIn(err, 401, 403) {
			return nil, &auth.Error{Reason: "drchrono rejected the access token", Err: err}
		}
		warn("could not fetch appointment history, the balance report shows no transactions")
		appts = nil
	}
	historical := appointments.FilterHistorical(appts, now.Format("2006-01-02"))

	var txs []Transaction
	for _, appt := range historical {
		items, err := s.ehr.LineItems(ctx, token, appt.ID)
		if err != nil {
			if drchrono.StatusIn(err, 401, 403) {
				return nil, &auth.Error{Reason: "drchrono rejected the access token", Err: err}
			}
			warn("could not fetch charges for appointment %d - left out of the balance report", appt.ID)
			continue
		}
		for _, item := range items {
			bal, err := decimal.NewFromString(item.BalanceTotal)
			if err != nil {
				warn("unreadable balance %q on appointment %d - left out of the total", item.BalanceTotal, appt.ID)
				continue
			}
			txs = append(txs, Transaction{
				AppointmentID: item.AppointmentID,
				ServiceDate:   item.ServiceDate,
				Reason:        appt.Reason,
				Code:          item.Code,
				Balance:       bal,
			})
		}
	}

	return BalanceReport(s.provider, patient.Name(), txs)
}

// clinicalNote downloads an appointment's note PDF, degrading to an empty
// placeholder when the note is missing or the download fails.
func (s *Service) clinicalNote(ctx context.Context, appt *drchrono.Appointment, warn func(string, ...interface{})) []byte {
	if !appt.ClinicalNote.HasPDF() {
		warn("no clinical note PDF found for appointment %d - skipped", appt.ID)
		return nil
	}
	note, err := s.ehr.DownloadClinicalNote(ctx, appt.ClinicalNote.PDF)
	if err != nil {
		warn("failed to download clinical note for %d", appt.ID)
		return nil
	}
	return note
}
