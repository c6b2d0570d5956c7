package packet

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
)

// Transaction is one billable charge feeding the balance report.
type Transaction struct {
	AppointmentID int64
	ServiceDate   string // YYYY-MM-DD
	Reason        string
	Code          string
	Balance       decimal.Decimal
}

// Report page size in points, matched to the HCFA template so the merged
// packet has uniform pages.
const (
	pageWidth  = 620
	pageHeight = 800
)

const claimLabel = "Auto Accident Claim"

// BalanceTotal sums every transaction's balance with exact decimal
// arithmetic. Input order does not matter.
func BalanceTotal(txs []Transaction) decimal.Decimal {
	total := decimal.NewFromInt(0)
	for _, tx := range txs {
		total = total.Add(tx.Balance)
	}
	return total
}

// BalanceReport renders the tabular account-balance PDF: provider and
// patient header, the exact total, then one row per transaction sorted
// newest service date first. With no transactions the table still gets a
// single placeholder row.
func BalanceReport(providerName, patientName string, txs []Transaction) ([]byte, error) {
	total := BalanceTotal(txs)

	sorted := make([]Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ServiceDate > sorted[j].ServiceDate
	})

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	pdf.SetMargins(18, 36, 18)
	pdf.SetAutoPageBreak(true, 36)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 22, "Patient Account Balance", "", 1, "L", false, 0, "")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 12, "Provider: "+providerName, "", 1, "L", false, 0, "")
	pdf.Ln(8)
	pdf.CellFormat(0, 12, "Patient: "+patientName, "", 1, "L", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 16, "Account Balance:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 12, formatUSD(total), "", 1, "L", false, 0, "")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 16, "Payment History:", "", 1, "L", false, 0, "")
	pdf.Ln(16)

	writeHistoryTable(pdf, patientName, sorted)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render balance report: %w", err)
	}
	return buf.Bytes(), nil
}

var historyWidths = [4]float64{96, 96, 128, 256}

func writeHistoryTable(pdf *gofpdf.Fpdf, patientName string, txs []Transaction) {
	const lineH = 12.0

	pdf.SetFont("Helvetica", "B", 11)
	headers := [4]string{"Date", "Debit", claimLabel, "Description"}
	for i, h := range headers {
		pdf.CellFormat(historyWidths[i], 18, h, "1", 0, "CM", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)

	if len(txs) == 0 {
		cells := [4]string{"-", "-", "-", "No billable transactions found."}
		for i, cell := range cells {
			align := "CM"
			if i == 3 {
				align = "LM"
			}
			pdf.CellFormat(historyWidths[i], 18, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
		return
	}

	for _, tx := range txs {
		desc := historyDescription(patientName, tx)
		lines := pdf.SplitText(desc, historyWidths[3]-16)
		rowH := float64(len(lines)) * lineH
		if rowH < 18 {
			rowH = 18
		}

		left := pdf.GetX()
		top := pdf.GetY()
		cells := [3]string{displayDate(tx.ServiceDate), formatUSD(tx.Balance), claimLabel}
		for i, cell := range cells {
			pdf.CellFormat(historyWidths[i], rowH, cell, "1", 0, "CM", false, 0, "")
		}

		x := pdf.GetX()
		pdf.Rect(x, top, historyWidths[3], rowH, "D")
		pdf.SetXY(x+8, top+(rowH-float64(len(lines))*lineH)/2)
		for _, line := range lines {
			pdf.CellFormat(historyWidths[3]-16, lineH, line, "", 2, "L", false, 0, "")
		}
		pdf.SetXY(left, top+rowH)
	}
}

// historyDescription composes the row description the billing staff read:
// "Appointment [<id>] <mm/dd/yy> <Last, First>: <reason> Code <code>".
func historyDescription(patientName string, tx Transaction) string {
	reason := tx.Reason
	if reason == "" {
		reason = "-"
	}
	code := tx.Code
	if code == "" {
		code = "-"
	}
	return fmt.Sprintf("Appointment [%d] %s %s: %s Code %s",
		tx.AppointmentID, shortDate(tx.ServiceDate), patientName, reason, code)
}

// displayDate renders YYYY-MM-DD as "Jan 02, 2006"; unparseable input is
// shown as-is.
func displayDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("Jan 02, 2006")
}

func shortDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("01/02/06")
}

// formatUSD renders a decimal as "$1,234.56", keeping the sign between the
// dollar mark and the digits.
func formatUSD(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	dollars, cents, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range dollars {
		if i > 0 && (len(dollars)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return "$" + sign + b.String() + "." + cents
}
