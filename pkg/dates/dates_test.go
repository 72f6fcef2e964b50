package dates

import (
	"testing"
	"time"
)

func TestParseDay(t *testing.T) {
	got, err := ParseDay("2026-03-01")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !got.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected day %v", got)
	}
	if _, err := ParseDay("01/03/2026"); err == nil {
		t.Fatal("expected layout error")
	}
}

func TestDayOfUsesLocation(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 23:30 UTC on Mar 1 is already Mar 2 in Rome.
	instant := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)
	if got := DayOf(instant, rome); Format(got) != "2026-03-02" {
		t.Fatalf("expected 2026-03-02, got %s", Format(got))
	}
	if got := DayOf(instant, nil); Format(got) != "2026-03-01" {
		t.Fatalf("expected 2026-03-01 in UTC, got %s", Format(got))
	}
}

func TestDayBounds(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	start := StartOfDay(day, time.UTC)
	end := EndOfDay(day, time.UTC)
	if !start.Equal(day) {
		t.Fatalf("unexpected start %v", start)
	}
	if end.Sub(start) != 24*time.Hour-time.Millisecond {
		t.Fatalf("expected end at 23:59:59.999, got %v", end)
	}
}
