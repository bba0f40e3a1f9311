// Package period computes reporting-period labels. A label is an opaque
// upper-case month+year token such as "SEP 2025"; two labels refer to the
// same period iff they are equal strings.
package period

import (
	"strings"
	"time"
)

// maxFiscalMonths bounds FiscalMonths against a misconfigured window.
const maxFiscalMonths = 24

// Label formats t's month as a period label.
func Label(t time.Time) string {
	return strings.ToUpper(t.Format("Jan 2006"))
}

// Current returns the reporting period open at wall-clock time now.
// Reporting lags real time by one month: in October units report September.
func Current(now time.Time) string {
	return Label(monthStart(now).AddDate(0, -1, 0))
}

// Previous returns the period one month before Current(now).
func Previous(now time.Time) string {
	return Label(monthStart(now).AddDate(0, -2, 0))
}

// FiscalMonths generates the ordered labels of a fiscal window starting at
// (startMonth, year). When endMonth precedes startMonth the window wraps
// into the following calendar year (April 2025 .. March 2026). Always
// returns at least one label and never more than maxFiscalMonths.
func FiscalMonths(startMonth, endMonth time.Month, year int) []string {
	if startMonth < time.January || startMonth > time.December {
		startMonth = time.January
	}
	if endMonth < time.January || endMonth > time.December {
		endMonth = time.December
	}
	cur := time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
	labels := make([]string, 0, 12)
	for len(labels) < maxFiscalMonths {
		labels = append(labels, Label(cur))
		if cur.Month() == endMonth {
			break
		}
		cur = cur.AddDate(0, 1, 0)
	}
	return labels
}

// FiscalYear returns the calendar year in which the fiscal window containing
// the month of "at" begins. For an April-start window, February 2026 belongs
// to the window that began in 2025.
func FiscalYear(startMonth time.Month, at time.Time) int {
	if startMonth < time.January || startMonth > time.December {
		startMonth = time.January
	}
	if at.Month() < startMonth {
		return at.Year() - 1
	}
	return at.Year()
}

// MonthsThrough truncates labels just after the first occurrence of upto.
// If upto is absent the full list is returned.
func MonthsThrough(labels []string, upto string) []string {
	for i, l := range labels {
		if l == upto {
			return labels[:i+1]
		}
	}
	return labels
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
