package report

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type Notifier interface {
	Notify(ctx context.Context, filename string, content []byte) error
}

// Scheduler submits the monthly report on a cron spec and records the output
// in the report log.
type Scheduler struct {
	cron     *cron.Cron
	queue    *Queue
	log      *logrus.Logger
	notifier Notifier
	now      func() time.Time
}

func NewScheduler(spec string, q *Queue, log *logrus.Logger, n Notifier) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(log)))),
		queue:    q,
		log:      log,
		notifier: n,
		now:      func() time.Time { return time.Now().UTC() },
	}
	if _, err := s.cron.AddFunc(spec, func() { s.RunMonthly(context.Background()) }); err != nil {
		return nil, fmt.Errorf("schedule monthly report %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.WithField("entries", len(s.cron.Entries())).Info("report scheduler started")
}

// Stop halts the schedule and returns a context that is done once a running
// job has returned.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) RunMonthly(ctx context.Context) {
	s.log.Info("Running monthly activity report")

	job := s.queue.Submit(KindMonthly)
	result, err := job.Wait(ctx)
	if err != nil {
		s.log.WithError(err).WithField("job_id", job.ID).Warn("monthly report abandoned")
		return
	}
	entry := s.log.WithField("job_id", job.ID)
	if !result.OK() {
		entry.Error(result.Message)
		return
	}
	entry.Info(result.Content)

	if s.notifier == nil {
		return
	}
	name := MonthlyFilename(s.now())
	if err := s.notifier.Notify(ctx, name, []byte(result.Content)); err != nil {
		entry.WithError(err).Error("monthly report delivery failed")
		return
	}
	entry.WithField("file", name).Info("monthly report delivered")
}

func MonthlyFilename(t time.Time) string {
	return fmt.Sprintf("monthly_report_%s.html", t.Format("20060102_150405"))
}

// NewFileLogger opens path for appending and returns a logger writing to it.
func NewFileLogger(path string) (*logrus.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open report log: %w", err)
	}
	l := logrus.New()
	l.SetOutput(f)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	return l, f, nil
}
