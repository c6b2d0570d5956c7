// Package appointments lists a patient's historical appointments: the ones
// in the past that carry a clinical-note PDF, newest first.
package appointments

import (
	"sort"

	"github.com/chartpacket/chartpacket/internal/platform/drchrono"
)

// maxOld sorts below every real ISO timestamp, so records without a
// scheduled time land at the end of the newest-first ordering.
const maxOld = "0000-00-00"

// comparableDate derives the date string used for the past/future test:
// the first 10 characters of scheduled_time, else the date field. An empty
// second return means the record has no usable date.
func comparableDate(a *drchrono.Appointment) (string, bool) {
	s := a.ScheduledTime
	if s == "" {
		s = a.Date
	}
	if len(s) < 10 {
		return "", false
	}
	return s[:10], true
}

func sortKey(a *drchrono.Appointment) string {
	if a.ScheduledTime == "" {
		return maxOld
	}
	return a.ScheduledTime
}

// FilterHistorical keeps the appointments that are dated, not in the
// future relative to today (an ISO YYYY-MM-DD date), and carry a usable
// clinical-note PDF reference, sorted newest first. The sort is stable, so
// equal timestamps keep their fetch order.
func FilterHistorical(appts []drchrono.Appointment, today string) []drchrono.Appointment {
	historical := make([]drchrono.Appointment, 0, len(appts))
	for _, a := range appts {
		date, ok := comparableDate(&a)
		if !ok {
			continue
		}
		if date > today {
			continue
		}
		if !a.ClinicalNote.HasPDF() {
			continue
		}
		historical = append(historical, a)
	}

	sort.SliceStable(historical, func(i, j int) bool {
		return sortKey(&historical[i]) > sortKey(&historical[j])
	})
	return historical
}
