package models

import (
	"testing"
	"time"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func TestIntervalsOverlap(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"identical", "2026-01-01", "2026-01-05", "2026-01-01", "2026-01-05", true},
		{"partial overlap", "2026-01-01", "2026-01-05", "2026-01-03", "2026-01-06", true},
		{"contained", "2026-01-01", "2026-01-10", "2026-01-03", "2026-01-05", true},
		{"back to back", "2026-01-01", "2026-01-03", "2026-01-03", "2026-01-05", false},
		{"back to back reversed", "2026-01-03", "2026-01-05", "2026-01-01", "2026-01-03", false},
		{"disjoint", "2026-01-01", "2026-01-03", "2026-01-10", "2026-01-12", false},
		{"one night shared", "2026-01-01", "2026-01-04", "2026-01-03", "2026-01-05", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := IntervalsOverlap(day(t, tc.aStart), day(t, tc.aEnd), day(t, tc.bStart), day(t, tc.bEnd))
			if got != tc.want {
				t.Errorf("IntervalsOverlap = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBookingCovers(t *testing.T) {
	b := Booking{CheckIn: day(t, "2026-01-01"), CheckOut: day(t, "2026-01-03")}
	if !b.Covers(day(t, "2026-01-01")) {
		t.Error("check-in day should be covered")
	}
	if !b.Covers(day(t, "2026-01-02")) {
		t.Error("middle day should be covered")
	}
	if b.Covers(day(t, "2026-01-03")) {
		t.Error("check-out day should not be covered")
	}
}
