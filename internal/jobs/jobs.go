// Package jobs runs the periodic maintenance tasks of the API process.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// StaleSweeper is satisfied by the payment SweepStale use case.
type StaleSweeper interface {
	Execute(ctx context.Context) (int64, error)
}

type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// AddPaymentSweep registers the stale payment sweep under spec, a standard
// five field cron expression.
func (s *Scheduler) AddPaymentSweep(spec string, sweeper StaleSweeper) error {
	_, err := s.cron.AddFunc(spec, func() {
		RunPaymentSweep(sweeper)
	})
	return err
}

// RunPaymentSweep runs one sweep with its own deadline.
func RunPaymentSweep(sweeper StaleSweeper) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := sweeper.Execute(ctx)
	if err != nil {
		log.Error().Err(err).Msg("payment sweep failed")
		return
	}
	if n > 0 {
		log.Info().Int64("payments", n).Msg("stale payments marked failed")
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		log.Warn().Msg("cron jobs still running at shutdown")
	}
}
