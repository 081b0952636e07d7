package utils

import (
	"testing"
	"time"
)

func TestDateOnly(t *testing.T) {
	if got := DateOnly(" 2026-03-01T08:00:00Z "); got != "2026-03-01" {
		t.Fatalf("got %q", got)
	}
	if got := DateOnly("2026"); got != "2026" {
		t.Fatalf("short value must pass through, got %q", got)
	}
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2026, 3, 1, 8, 5, 0, 0, time.Local)
	if got := FormatDateTime(ts); got != "2026-03-01 08:05" {
		t.Fatalf("got %q", got)
	}
}
