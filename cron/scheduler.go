package cron

import (
	"context"
	"time"

	"servicehub/services/booking"
	"servicehub/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs periodic maintenance jobs.
type Scheduler struct {
	c        *cron.Cron
	bookings booking.BookingService
	monitor  *utils.HealthMonitor
	logger   *zap.Logger
}

func NewScheduler(bookings booking.BookingService, monitor *utils.HealthMonitor, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		c:        cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger))),
		bookings: bookings,
		monitor:  monitor,
		logger:   logger,
	}
	if _, err := s.c.AddFunc("@every 1m", s.ExpireBookings); err != nil {
		return nil, err
	}
	if _, err := s.c.AddFunc("@every 30s", s.ProbeHealth); err != nil {
		return nil, err
	}
	return s, nil
}

// Start probes once immediately, then runs the schedule in the background.
func (s *Scheduler) Start() {
	s.ProbeHealth()
	s.c.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.c.Stop().Done()
}

// ExpireBookings cancels pending bookings whose payment window has closed.
func (s *Scheduler) ExpireBookings() {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Second)
	defer cancel()
	n, err := s.bookings.ExpirePending(ctx)
	if err != nil {
		s.logger.Error("Failed to expire pending bookings", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("Expired unpaid bookings", zap.Int("count", n))
	}
}

func (s *Scheduler) ProbeHealth() {
	status := s.monitor.Probe(context.Background())
	if !status.Healthy() {
		s.logger.Warn("Dependency health check failed", zap.Any("status", status))
	}
}
