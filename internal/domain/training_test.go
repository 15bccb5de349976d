package domain

import (
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from TrainingStatus
		to   TrainingStatus
		want bool
	}{
		{"in_progress stays in_progress", StatusInProgress, StatusInProgress, true},
		{"in_progress finishes", StatusInProgress, StatusDone, true},
		{"done cannot regress", StatusDone, StatusInProgress, false},
		{"done stays done", StatusDone, StatusDone, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanTransition(tc.from, tc.to); got != tc.want {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestDayRange(t *testing.T) {
	// A late-evening timestamp in a +02:00 zone still belongs to its UTC day.
	loc := time.FixedZone("CEST", 2*60*60)
	in := time.Date(2024, 5, 1, 23, 45, 0, 0, loc) // 21:45 UTC on May 1

	start, end := DayRange(in)

	wantStart := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if !end.After(start) {
		t.Errorf("end %v not after start %v", end, start)
	}
	if !end.Before(wantStart.Add(24 * time.Hour)) {
		t.Errorf("end = %v, must stay within the day", end)
	}

	// 23:59:59.999 on the same day is inside the range, midnight of the
	// next day is outside.
	lastMoment := time.Date(2024, 5, 1, 23, 59, 59, 999_000_000, time.UTC)
	if lastMoment.After(end) {
		t.Errorf("23:59:59.999 must be inside the range, end = %v", end)
	}
	nextMidnight := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	if !nextMidnight.After(end) {
		t.Errorf("next midnight must be outside the range, end = %v", end)
	}
}

func TestDayRangeCrossesUTCMidnight(t *testing.T) {
	// 00:30 in +02:00 is 22:30 UTC the previous day; the range must anchor
	// to the UTC day, not the local one.
	loc := time.FixedZone("CEST", 2*60*60)
	in := time.Date(2024, 5, 2, 0, 30, 0, 0, loc)

	start, _ := DayRange(in)

	wantStart := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
}

func TestTruncateToDay(t *testing.T) {
	in := time.Date(2024, 5, 1, 17, 4, 5, 6, time.UTC)
	got := TruncateToDay(in)
	want := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("TruncateToDay(%v) = %v, want %v", in, got, want)
	}
}

func TestStatusValid(t *testing.T) {
	if !StatusInProgress.Valid() || !StatusDone.Valid() {
		t.Error("known statuses must be valid")
	}
	if TrainingStatus("finished").Valid() {
		t.Error("unknown status must be invalid")
	}
}
