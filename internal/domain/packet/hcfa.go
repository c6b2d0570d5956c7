package packet

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/phpdave11/gofpdf/contrib/gofpdi"
	"github.com/shopspring/decimal"
)

// Filler fills HCFA-1500 claim forms by drawing text at the template's
// absolute field positions. With a template path the text lands on top of
// the imported form page; with an empty path only the overlay is drawn,
// which is what the tests use.
type Filler struct {
	TemplatePath string
}

// Fill produces one filled single-page claim form for the given record.
func (f *Filler) Fill(data *FormData) ([]byte, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	if f.TemplatePath != "" {
		tpl := gofpdi.ImportPage(pdf, f.TemplatePath, 1, "/MediaBox")
		gofpdi.UseImportedTemplate(pdf, tpl, 0, 0, pageWidth, pageHeight)
	}

	drawChecks(pdf, data)
	drawText(pdf, data)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("fill claim form: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("fill claim form: %w", err)
	}
	return buf.Bytes(), nil
}

// check draws the mark for a ticked box. The built-in core fonts have no
// check glyph, so an X stands in; payers accept either.
func check(pdf *gofpdf.Fpdf, p point) {
	pdf.Text(p.X, p.Y, "X")
}

func drawChecks(pdf *gofpdf.Fpdf, data *FormData) {
	pdf.SetFont("Helvetica", "", 12)

	check(pdf, hcfa.InsuranceTypeOther)

	switch data.PatientGender {
	case "Male":
		check(pdf, hcfa.SexMale)
		check(pdf, hcfa.InsuredSexMale)
	case "Female":
		check(pdf, hcfa.SexFemale)
		check(pdf, hcfa.InsuredSexFemale)
	}

	check(pdf, hcfa.RelationSelf)
	check(pdf, hcfa.EmploymentNo)
	// Every claim this practice files is an auto-accident claim for now;
	// the box 10b condition becomes data-driven once intake records the
	// accident type.
	check(pdf, hcfa.AutoAccidentYes)
	check(pdf, hcfa.OtherAccidentNo)
	check(pdf, hcfa.OtherHealthPlanNo)
	check(pdf, hcfa.TaxIDEIN)
	check(pdf, hcfa.AcceptAssignment)
}

func drawText(pdf *gofpdf.Fpdf, data *FormData) {
	pdf.SetFont("Courier", "", 10)

	text := func(p point, s string) { pdf.Text(p.X, p.Y, s) }
	rowText := func(p point, row int, s string) {
		pdf.Text(p.X, p.Y+float64(row)*hcfa.RowStride, s)
	}

	text(hcfa.PatientName, data.PatientName)
	text(hcfa.InsuredName, data.PatientName)

	if y, m, d, ok := splitISODate(data.PatientDOB); ok {
		text(hcfa.PatientDOBMonth, m)
		text(hcfa.PatientDOBDay, d)
		text(hcfa.PatientDOBYear, y)
		text(hcfa.InsuredDOBMonth, m)
		text(hcfa.InsuredDOBDay, d)
		text(hcfa.InsuredDOBYear, y)
	}

	text(hcfa.PatientAddress, data.PatientAddress)
	text(hcfa.PatientCity, data.PatientCity)
	text(hcfa.PatientState, data.PatientState)
	text(hcfa.PatientZip, data.PatientZip)
	text(hcfa.InsuredAddress, data.PatientAddress)
	text(hcfa.InsuredCity, data.PatientCity)
	text(hcfa.InsuredState, data.PatientState)
	text(hcfa.InsuredZip, data.PatientZip)

	if area, local, ok := strings.Cut(data.PatientPhone, " "); ok {
		text(hcfa.PatientPhoneArea, area)
		text(hcfa.PatientPhoneLocal, local)
		text(hcfa.InsuredPhoneArea, area)
		text(hcfa.InsuredPhoneLocal, local)
	}

	text(hcfa.PatientSignature, signatureOnFile)
	text(hcfa.InsuredSignature, signatureOnFile)
	signDate := slashDate(data.SignatureDate)
	text(hcfa.PatientSignatureDate, signDate)

	for i, code := range data.ICD10Codes {
		p := icdPosition(i)
		pdf.Text(p.X, p.Y, code)
	}
	text(hcfa.ICDIndicator, icdIndicator)

	for i, date := range data.ServiceDates {
		if y, m, d, ok := splitISODate(date); ok {
			yy := y
			if len(yy) == 4 {
				yy = yy[2:]
			}
			rowText(hcfa.ServiceFromMonth, i, m)
			rowText(hcfa.ServiceFromDay, i, d)
			rowText(hcfa.ServiceFromYear, i, yy)
			rowText(hcfa.ServiceToMonth, i, m)
			rowText(hcfa.ServiceToDay, i, d)
			rowText(hcfa.ServiceToYear, i, yy)
		}
	}
	for i, code := range data.Codes {
		rowText(hcfa.Procedure, i, code)
	}
	for i, charge := range data.Charges {
		dollars, cents := splitAmount(charge)
		rowText(hcfa.ChargeDollars, i, dollars)
		rowText(hcfa.ChargeCents, i, cents)
	}
	// One diagnosis covers every charge row on these claims, so the
	// pointer, place of service, units and NPI columns repeat per row.
	for i := range data.Charges {
		rowText(hcfa.DiagnosisPointer, i, "a")
		rowText(hcfa.PlaceOfService, i, servicePlace)
		rowText(hcfa.DaysOrUnits, i, daysOrUnits)
		rowText(hcfa.RowNPI, i, providerNPI)
	}

	text(hcfa.FederalTaxID, federalTaxID)
	text(hcfa.PatientAccount, patientAccountNo)

	dollars, cents := splitAmount(totalCharge(data.Charges))
	text(hcfa.TotalChargeDollars, dollars)
	text(hcfa.TotalChargeCents, cents)

	text(hcfa.PhysicianSignature, physicianSignature)
	text(hcfa.PhysicianSignDate, signDate)

	text(hcfa.FacilityName, providerOfficeName)
	text(hcfa.FacilityAddress, providerAddress)
	text(hcfa.FacilityCityState, providerCityState)

	if area, local, ok := strings.Cut(providerPhone, " "); ok {
		text(hcfa.BillingPhoneArea, area)
		text(hcfa.BillingPhoneLocal, local)
	}
	text(hcfa.BillingName, providerBillingName)
	text(hcfa.BillingAddress, providerAddress)
	text(hcfa.BillingCityState, providerCityState)
	text(hcfa.BillingNPI, providerNPI)
}

// icdPosition places diagnosis code i in box 21's grid: four codes per
// line, wrapping back to the left edge one line down after each group.
func icdPosition(i int) point {
	wrap := float64(i / 4)
	return point{
		X: hcfa.ICDCodeOrigin.X + hcfa.ICDCodeStrideX*float64(i) - hcfa.ICDCodeWrapX*wrap,
		Y: hcfa.ICDCodeOrigin.Y + hcfa.ICDCodeStrideY*wrap,
	}
}

// splitISODate breaks YYYY-MM-DD into its parts; ok is false for anything
// not shaped like that.
func splitISODate(s string) (year, month, day string, ok bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

// slashDate renders YYYY-MM-DD as MM/DD/YYYY for the signature-date cells.
func slashDate(s string) string {
	y, m, d, ok := splitISODate(s)
	if !ok {
		return s
	}
	return m + "/" + d + "/" + y
}

// splitAmount breaks a decimal amount string into its dollar and cent
// substrings for the form's split charge cells. Cents always come out as
// two digits.
func splitAmount(s string) (dollars, cents string) {
	dollars, cents, found := strings.Cut(s, ".")
	if !found {
		return dollars, "00"
	}
	switch len(cents) {
	case 0:
		cents = "00"
	case 1:
		cents += "0"
	default:
		cents = cents[:2]
	}
	return dollars, cents
}

// totalCharge sums the per-row charges. Unparseable entries count as zero;
// a bad price string should not block the whole claim.
func totalCharge(charges []string) string {
	total := decimal.NewFromInt(0)
	for _, c := range charges {
		d, err := decimal.NewFromString(c)
		if err != nil {
			continue
		}
		total = total.Add(d)
	}
	return total.StringFixed(2)
}
