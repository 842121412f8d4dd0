// Package sched fires missions on a cron schedule so the rover can
// cover its rows unattended.
package sched

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/gni-robotics/fieldrover/internal/log"
)

// Scheduler launches missions from a five-field cron expression
// ("0 6 * * *" covers the field at 06:00 daily).
type Scheduler struct {
	cron *cron.Cron
	expr string
}

// Start validates expr and begins scheduling. launch reports whether
// the mission actually started; a refusal means one is still running
// and the tick is skipped, never queued.
func Start(expr string, launch func() bool) (*Scheduler, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	c := cron.New(cron.WithParser(parser))

	if _, err := c.AddFunc(expr, launchJob(expr, launch)); err != nil {
		return nil, fmt.Errorf("parsing schedule %q: %w", expr, err)
	}

	c.Start()
	log.Info("mission schedule active", "cron", expr)
	return &Scheduler{cron: c, expr: expr}, nil
}

func launchJob(expr string, launch func() bool) func() {
	return func() {
		if !launch() {
			log.Warn("scheduled mission skipped, previous still running", "cron", expr)
			return
		}
		log.Info("scheduled mission started", "cron", expr)
	}
}

// Next reports when the next mission fires.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Stop halts future launches. An in-flight mission is not touched.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
