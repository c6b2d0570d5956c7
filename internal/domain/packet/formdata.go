// Package packet assembles the downloadable patient packet: a balance
// report, then each selected appointment's clinical note followed by a
// filled HCFA-1500 claim form, merged into one PDF.
package packet

import (
	"strings"

	"github.com/chartpacket/chartpacket/internal/platform/drchrono"
)

// Practice constants printed on every claim form.
const (
	providerNPI         = "1326453796"
	federalTaxID        = "83-3726403"
	patientAccountNo    = "511594374305555"
	physicianSignature  = "E. Kurokawa"
	providerOfficeName  = "Primary Office"
	providerAddress     = "4500 Satellite Blvd, Suite 1140"
	providerCityState   = "Duluth, GA 30096"
	providerPhone       = "678 404-7643"
	providerBillingName = "Back Pain MD"
	signatureOnFile     = "Signature on File"

	defaultPhone = "000 000-0000"

	icdIndicator = "0"
	servicePlace = "11"
	daysOrUnits  = "1"
)

// FormData is the flat record that drives one HCFA-1500 fill. The four
// slices are parallel: index i across ServiceDates, Codes,
// DiagnosisPointers and Charges describes the same charge row.
type FormData struct {
	PatientName    string
	PatientDOB     string // YYYY-MM-DD
	PatientGender  string
	PatientAddress string
	PatientCity    string
	PatientState   string
	PatientZip     string
	PatientPhone   string // "AAA LLL-NNNN" or the default placeholder

	SignatureDate string // YYYY-MM-DD, from the clinical note's updated_at

	ICD10Codes []string

	ServiceDates      []string // YYYY-MM-DD each
	Codes             []string
	DiagnosisPointers []string
	Charges           []string // decimal strings, e.g. "150.00"
}

// BuildFormData flattens a patient, one appointment and its line items into
// the record the form filler consumes. Phone numbers are only usable when
// DrChrono sends the full "(AAA) LLL-NNNN" shape, exactly 14 characters;
// anything else gets the placeholder so the form's two phone cells still
// have something to hold.
func BuildFormData(patient *drchrono.Patient, appt *drchrono.Appointment, items []drchrono.LineItem) *FormData {
	phone := defaultPhone
	if len(patient.CellPhone) == 14 {
		phone = strings.NewReplacer("(", "", ")", "").Replace(patient.CellPhone)
	}

	signatureDate := ""
	if appt.ClinicalNote != nil {
		signatureDate = appt.ClinicalNote.UpdatedAt
	}
	if len(signatureDate) > 10 {
		signatureDate = signatureDate[:10]
	}

	data := &FormData{
		PatientName:    patient.Name(),
		PatientDOB:     patient.DateOfBirth,
		PatientGender:  patient.Gender,
		PatientAddress: patient.Address,
		PatientCity:    patient.City,
		PatientState:   patient.State,
		PatientZip:     patient.ZipCode,
		PatientPhone:   phone,
		SignatureDate:  signatureDate,
		ICD10Codes:     appt.ICD10Codes,
	}

	for _, item := range items {
		data.ServiceDates = append(data.ServiceDates, item.ServiceDate)
		data.Codes = append(data.Codes, item.Code)
		data.DiagnosisPointers = append(data.DiagnosisPointers, item.DiagnosisPointers)
		data.Charges = append(data.Charges, item.Price)
	}
	return data
}
