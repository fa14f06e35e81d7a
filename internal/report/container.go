package report

import (
	"context"
	"os"

	"github.com/saulo-duarte/quizmaster/internal/attempt"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/saulo-duarte/quizmaster/internal/user"
	"gorm.io/gorm"
)

type ReportContainer struct {
	Handler   *Handler
	Generator *Generator
	Queue     *Queue
	Scheduler *Scheduler

	logFile *os.File
}

func NewReportContainer(db *gorm.DB) *ReportContainer {
	generator := NewGenerator(user.NewRepository(db), attempt.NewRepository(db))
	queue := NewQueue(generator, config.App.ReportWorkers, config.App.ReportQueueSize)
	handler := NewHandler(queue, config.App.CSVReportTimeout, config.App.MonthlyReportTimeout)

	return &ReportContainer{
		Handler:   handler,
		Generator: generator,
		Queue:     queue,
	}
}

// EnableSchedule wires the monthly cron job, its file log and, when a bot
// token and chat id are configured, Telegram delivery.
func (c *ReportContainer) EnableSchedule() error {
	reportLog, f, err := NewFileLogger(config.App.ReportLogPath)
	if err != nil {
		return err
	}

	var notifier Notifier
	if config.App.TelegramBotToken != "" && config.App.TelegramChatID != 0 {
		tg, err := NewTelegramNotifier(config.App.TelegramBotToken, config.App.TelegramChatID)
		if err != nil {
			config.Log.WithError(err).Warn("telegram delivery disabled")
		} else {
			notifier = tg
		}
	}

	scheduler, err := NewScheduler(config.App.MonthlyReportSchedule, c.Queue, reportLog, notifier)
	if err != nil {
		f.Close()
		return err
	}
	c.Scheduler = scheduler
	c.logFile = f
	return nil
}

func (c *ReportContainer) Start() {
	c.Queue.Start()
	if c.Scheduler != nil {
		c.Scheduler.Start()
	}
}

func (c *ReportContainer) Shutdown(ctx context.Context) error {
	if c.Scheduler != nil {
		select {
		case <-c.Scheduler.Stop().Done():
		case <-ctx.Done():
		}
	}
	err := c.Queue.Close()
	if c.logFile != nil {
		c.logFile.Close()
	}
	return err
}
