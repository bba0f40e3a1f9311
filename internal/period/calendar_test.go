package period_test

import (
	"testing"
	"time"

	"github.com/opstat/opstat/internal/period"
)

func TestCurrentLagsWallClockByOneMonth(t *testing.T) {
	now := time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC)
	if got := period.Current(now); got != "SEP 2025" {
		t.Errorf("Current() = %q, want SEP 2025", got)
	}
	if got := period.Previous(now); got != "AUG 2025" {
		t.Errorf("Previous() = %q, want AUG 2025", got)
	}
}

func TestCurrentAcrossYearBoundary(t *testing.T) {
	now := time.Date(2026, time.January, 3, 0, 0, 0, 0, time.UTC)
	if got := period.Current(now); got != "DEC 2025" {
		t.Errorf("Current() = %q, want DEC 2025", got)
	}
	if got := period.Previous(now); got != "NOV 2025" {
		t.Errorf("Previous() = %q, want NOV 2025", got)
	}
}

func TestCurrentNotAffectedByMonthLength(t *testing.T) {
	// March 31 minus a naive month would land in early March again.
	now := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)
	if got := period.Current(now); got != "FEB 2025" {
		t.Errorf("Current() = %q, want FEB 2025", got)
	}
}

func TestFiscalMonthsAprilToMarch(t *testing.T) {
	labels := period.FiscalMonths(time.April, time.March, 2025)
	if len(labels) != 12 {
		t.Fatalf("got %d labels, want 12", len(labels))
	}
	if labels[0] != "APR 2025" {
		t.Errorf("first label = %q, want APR 2025", labels[0])
	}
	if labels[11] != "MAR 2026" {
		t.Errorf("last label = %q, want MAR 2026", labels[11])
	}
}

func TestFiscalMonthsSingleMonth(t *testing.T) {
	labels := period.FiscalMonths(time.June, time.June, 2025)
	if len(labels) != 1 || labels[0] != "JUN 2025" {
		t.Fatalf("got %v, want [JUN 2025]", labels)
	}
}

func TestFiscalMonthsBounds(t *testing.T) {
	for start := time.January; start <= time.December; start++ {
		for end := time.January; end <= time.December; end++ {
			labels := period.FiscalMonths(start, end, 2025)
			if len(labels) < 1 || len(labels) > 24 {
				t.Fatalf("FiscalMonths(%v,%v) returned %d labels", start, end, len(labels))
			}
		}
	}
}

func TestFiscalMonthsInvalidInputClamped(t *testing.T) {
	labels := period.FiscalMonths(0, 99, 2025)
	if len(labels) < 1 || len(labels) > 24 {
		t.Fatalf("got %d labels for invalid window", len(labels))
	}
}

func TestFiscalYear(t *testing.T) {
	feb := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	if y := period.FiscalYear(time.April, feb); y != 2025 {
		t.Errorf("FiscalYear(April, Feb 2026) = %d, want 2025", y)
	}
	sep := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	if y := period.FiscalYear(time.April, sep); y != 2025 {
		t.Errorf("FiscalYear(April, Sep 2025) = %d, want 2025", y)
	}
}

func TestMonthsThrough(t *testing.T) {
	labels := period.FiscalMonths(time.April, time.March, 2025)
	got := period.MonthsThrough(labels, "SEP 2025")
	if len(got) != 6 {
		t.Fatalf("got %d labels, want 6 (APR..SEP)", len(got))
	}
	if got[len(got)-1] != "SEP 2025" {
		t.Errorf("last = %q, want SEP 2025", got[len(got)-1])
	}
	// Absent label keeps the full window.
	if got := period.MonthsThrough(labels, "SEP 1999"); len(got) != 12 {
		t.Errorf("absent label: got %d labels, want 12", len(got))
	}
}
