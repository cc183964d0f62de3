package timeutil

import (
	"testing"
	"time"
)

func TestNow_AlwaysUTC(t *testing.T) {
	now := Now()

	if now.Location() != time.UTC {
		t.Errorf("Now() returned non-UTC timezone: %v", now.Location())
	}
	if (SystemClock{}).Now().Location() != time.UTC {
		t.Errorf("SystemClock returned non-UTC timezone")
	}
}

func TestManualClock(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	clock := NewManualClock(start)

	if !clock.Now().Equal(start) {
		t.Fatalf("Now() = %v, want %v", clock.Now(), start)
	}

	clock.Advance(14 * 24 * time.Hour)
	want := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	if !clock.Now().Equal(want) {
		t.Errorf("after Advance Now() = %v, want %v", clock.Now(), want)
	}
}

func TestStartOfDay(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "midnight UTC",
			input:    time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC),
			expected: "2025-11-20 00:00:00 +0000 UTC",
		},
		{
			name:     "noon UTC",
			input:    time.Date(2025, 11, 20, 12, 30, 45, 0, time.UTC),
			expected: "2025-11-20 00:00:00 +0000 UTC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StartOfDay(tt.input)

			if result.String() != tt.expected {
				t.Errorf("StartOfDay() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2006-01-02", "2026-02-28")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if got.Location() != time.UTC || got.Day() != 28 {
		t.Errorf("ParseDate() = %v", got)
	}

	if _, err := ParseDate("2006-01-02", "28/02/2026"); err == nil {
		t.Error("expected error for malformed date")
	}
}
