package cron

import (
	"MindGarden/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine               *cron.Cron
	insightRecomputeJob  *job.InsightRecomputeJob
	insightRecomputeSpec string
}

// NewCronManager schedules the recompute job on spec, a robfig descriptor
// such as "@every 10m" or a six-field expression with seconds.
func NewCronManager(insightRecomputeJob *job.InsightRecomputeJob, spec string) *Manager {
	return &Manager{
		engine:               cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		insightRecomputeJob:  insightRecomputeJob,
		insightRecomputeSpec: spec,
	}
}

// RegisterJobs adds every job to the engine.
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.insightRecomputeSpec, s.insightRecomputeJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron engine started", "insight_recompute_spec", s.insightRecomputeSpec)
	s.engine.Start()
}

// Stop stops scheduling and waits for running jobs to finish.
func (s *Manager) Stop() {
	log.Info("Cron engine stopping")
	<-s.engine.Stop().Done()
	log.Info("Cron engine stopped")
}
