package timeutil

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-08-17")
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if got := FormatDate(parsed); got != "2024-08-17" {
		t.Fatalf("expected formatted date to round-trip, got %s", got)
	}
}

func TestFormatClock(t *testing.T) {
	value := time.Date(2024, 8, 17, 15, 30, 0, 0, time.UTC)
	if got := FormatClock(value); got != "15:30:00" {
		t.Fatalf("unexpected clock %s", got)
	}
}

func TestNormalizeClock(t *testing.T) {
	cases := map[string]string{
		"":                "",
		"15:00:00":        "15:00:00",
		" 15:00:00+00:00": "15:00:00",
		"19:45:00Z":       "19:45:00",
		"12:30:00-05:00":  "12:30:00",
		"TBD":             "TBD",
	}
	for in, want := range cases {
		if got := NormalizeClock(in); got != want {
			t.Fatalf("NormalizeClock(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestKickoff(t *testing.T) {
	got, ok := Kickoff("2024-08-17", "15:00:00+00:00")
	if !ok || !got.Equal(time.Date(2024, 8, 17, 15, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected kickoff %v ok=%v", got, ok)
	}
	got, ok = Kickoff("2024-08-17", "")
	if !ok || got.Hour() != 0 {
		t.Fatalf("expected midnight when clock missing, got %v", got)
	}
	if _, ok := Kickoff("17/08/2024", "15:00:00"); ok {
		t.Fatalf("expected malformed date to fail")
	}
}
