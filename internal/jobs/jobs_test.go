package jobs

import (
	"context"
	"errors"
	"testing"
)

type countingSweeper struct {
	calls int
	err   error
}

func (s *countingSweeper) Execute(context.Context) (int64, error) {
	s.calls++
	return 2, s.err
}

func TestAddPaymentSweep_RejectsBadSpec(t *testing.T) {
	s := NewScheduler()
	if err := s.AddPaymentSweep("not a cron", &countingSweeper{}); err == nil {
		t.Fatalf("expected parse error")
	}
	if err := s.AddPaymentSweep("*/15 * * * *", &countingSweeper{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunPaymentSweep(t *testing.T) {
	ok := &countingSweeper{}
	RunPaymentSweep(ok)
	failing := &countingSweeper{err: errors.New("db down")}
	RunPaymentSweep(failing)

	if ok.calls != 1 || failing.calls != 1 {
		t.Fatalf("expected one call each, got %d/%d", ok.calls, failing.calls)
	}
}

func TestStartStop(t *testing.T) {
	s := NewScheduler()
	s.Start()
	s.Stop(context.Background())
}
