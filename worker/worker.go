package worker

import (
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// IJob a schedulable background job
type IJob interface {
	Start() error
	Run()
	Stop() error
}

type OnWork func() error

// BaseJob cron-backed job skeleton. Overlapping triggers are skipped while a
// previous run is still working.
type BaseJob struct {
	Cron      *cron.Cron
	IsRunning bool
	OnWork    OnWork
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

func (job *BaseJob) Stop() error {
	job.Cron.Stop()
	return nil
}

func (job *BaseJob) Run() {
	if job.IsRunning {
		return
	}

	job.IsRunning = true

	if err := job.OnWork(); err != nil {
		logrus.WithError(err).Errorln("job run failed")
	}

	job.IsRunning = false
}
