package booking

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/homeservices/internal/httperr"
	"github.com/BruksfildServices01/homeservices/internal/models"
)

func TestCancel_RejectsTerminalStates(t *testing.T) {
	for _, st := range []Status{StatusCompleted, StatusCancelled} {
		b := &models.Booking{Status: string(st)}
		err := Cancel(b, time.Now())
		if !httperr.IsKind(err, httperr.KindInvalidTransition) {
			t.Fatalf("status %s: expected invalid transition, got %v", st, err)
		}
		if b.Status != string(st) {
			t.Fatalf("status %s: booking mutated to %s", st, b.Status)
		}
		if b.CancelledAt != nil {
			t.Fatalf("status %s: cancelledAt set", st)
		}
	}
}

func TestCancel_NonTerminal(t *testing.T) {
	for _, st := range []Status{StatusPending, StatusConfirmed, StatusInProgress} {
		b := &models.Booking{Status: string(st)}
		now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
		if err := Cancel(b, now); err != nil {
			t.Fatalf("status %s: unexpected error %v", st, err)
		}
		if b.Status != string(StatusCancelled) {
			t.Fatalf("status %s: expected CANCELLED, got %s", st, b.Status)
		}
		if b.CancelledAt == nil || !b.CancelledAt.Equal(now) {
			t.Fatalf("status %s: cancelledAt not stamped", st)
		}
	}
}

func TestCanTransition_Permissive(t *testing.T) {
	if err := CanTransition(StatusCancelled, StatusInProgress, false); err != nil {
		t.Fatalf("permissive mode must accept any status, got %v", err)
	}
}

func TestCanTransition_Strict(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusConfirmed, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusCancelled, StatusInProgress, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusPending, StatusConfirmed, false},
	}
	for _, tc := range cases {
		err := CanTransition(tc.from, tc.to, true)
		if (err == nil) != tc.ok {
			t.Fatalf("%s -> %s: ok=%v err=%v", tc.from, tc.to, tc.ok, err)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if st, ok := ParseStatus("in_progress"); !ok || st != StatusInProgress {
		t.Fatalf("expected IN_PROGRESS, got %q %v", st, ok)
	}
	if _, ok := ParseStatus("DONE"); ok {
		t.Fatalf("expected unknown status to fail")
	}
}

func TestValidStartTime(t *testing.T) {
	good := []string{"00:00", "9:30", "09:30", "23:59"}
	bad := []string{"24:00", "12:60", "1230", "", "ab:cd", "12:5"}
	for _, s := range good {
		if !ValidStartTime(s) {
			t.Fatalf("expected %q valid", s)
		}
	}
	for _, s := range bad {
		if ValidStartTime(s) {
			t.Fatalf("expected %q invalid", s)
		}
	}
}

func TestValidHours(t *testing.T) {
	if ValidHours(0) || ValidHours(13) {
		t.Fatalf("bounds must be exclusive outside [1,12]")
	}
	if !ValidHours(1) || !ValidHours(12) {
		t.Fatalf("bounds must be inclusive")
	}
}

func TestTotalPrice(t *testing.T) {
	if got := TotalPrice(200, 3); got != 600 {
		t.Fatalf("expected 600, got %v", got)
	}
}

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	d, err := ParseDate("2025-04-10", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.April || d.Day() != 10 {
		t.Fatalf("unexpected date %v", d)
	}
	if _, err := ParseDate("2025-04-10T08:00:00Z", loc); err != nil {
		t.Fatalf("rfc3339 must parse: %v", err)
	}
	if _, err := ParseDate("10/04/2025", loc); !httperr.IsKind(err, httperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
