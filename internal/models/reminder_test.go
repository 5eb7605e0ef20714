package models

import (
	"errors"
	"testing"
	"time"
)

func TestParseRepeatKind(t *testing.T) {
	tests := []struct {
		in      string
		want    RepeatKind
		wantErr bool
	}{
		{"", RepeatNone, false},
		{"none", RepeatNone, false},
		{"minutes", RepeatMinutes, false},
		{"hours", RepeatHours, false},
		{"days", RepeatDays, false},
		{"weeks", RepeatWeeks, false},
		{"months", RepeatMonths, false},
		{"fortnights", RepeatNone, true},
		{"Days", RepeatNone, true},
		{"daily", RepeatNone, true},
	}

	for _, tt := range tests {
		got, err := ParseRepeatKind(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRepeatKind(%q): expected error, got %q", tt.in, got)
			} else if !errors.Is(err, ErrInvalidRepeatKind) {
				t.Errorf("ParseRepeatKind(%q): error %v is not ErrInvalidRepeatKind", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRepeatKind(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRepeatKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRepeatKindInterval(t *testing.T) {
	tests := []struct {
		kind RepeatKind
		n    int
		want time.Duration
	}{
		{RepeatMinutes, 1, time.Minute},
		{RepeatMinutes, 45, 45 * time.Minute},
		{RepeatHours, 2, 2 * time.Hour},
		{RepeatDays, 1, 24 * time.Hour},
		{RepeatWeeks, 2, 14 * 24 * time.Hour},
		// Months are a fixed 30 days, not calendar months.
		{RepeatMonths, 1, 30 * 24 * time.Hour},
		{RepeatMonths, 3, 90 * 24 * time.Hour},
		{RepeatNone, 5, 0},
	}

	for _, tt := range tests {
		if got := tt.kind.Interval(tt.n); got != tt.want {
			t.Errorf("%s.Interval(%d) = %v, want %v", tt.kind, tt.n, got, tt.want)
		}
	}
}

func TestNextSendTime(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	r := Reminder{
		SendTime:       base,
		RepeatKind:     RepeatDays,
		RepeatInterval: 1,
	}
	if got, want := r.NextSendTime(), base.Add(24*time.Hour); !got.Equal(want) {
		t.Errorf("NextSendTime() = %v, want %v", got, want)
	}
}
