package report

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/saulo-duarte/quizmaster/internal/apperror"
	"github.com/saulo-duarte/quizmaster/internal/config"
)

type Handler struct {
	queue          *Queue
	csvTimeout     time.Duration
	monthlyTimeout time.Duration
	now            func() time.Time
}

func NewHandler(q *Queue, csvTimeout, monthlyTimeout time.Duration) *Handler {
	return &Handler{
		queue:          q,
		csvTimeout:     csvTimeout,
		monthlyTimeout: monthlyTimeout,
		now:            time.Now,
	}
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, download{
		kind:        KindUserCSV,
		timeout:     h.csvTimeout,
		filename:    "users_report.csv",
		contentType: "text/csv",
		timeoutMsg:  "CSV export task timed out. Please try again later.",
		failMsg:     "Failed to generate CSV report",
	})
}

func (h *Handler) GenerateMonthly(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, download{
		kind:        KindMonthly,
		timeout:     h.monthlyTimeout,
		filename:    MonthlyFilename(h.now()),
		contentType: "text/html",
		timeoutMsg:  "Monthly report task timed out. Please try again later.",
		failMsg:     "Failed to generate monthly report",
	})
}

type download struct {
	kind        Kind
	timeout     time.Duration
	filename    string
	contentType string
	timeoutMsg  string
	failMsg     string
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request, d download) {
	log := config.WithContext(r.Context()).WithField("report", string(d.kind))

	ctx, cancel := context.WithTimeout(r.Context(), d.timeout)
	defer cancel()

	job := h.queue.Submit(d.kind)
	result, err := job.Wait(ctx)
	if err != nil {
		log.WithField("job_id", job.ID).Warn("report wait timed out")
		config.WriteError(w, r, apperror.Timeout(d.timeoutMsg))
		return
	}
	if !result.OK() {
		msg := result.Message
		if msg == "" {
			msg = d.failMsg
		}
		config.WriteError(w, r, apperror.Internal(msg, nil))
		return
	}

	w.Header().Set("Content-Type", d.contentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", d.filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(result.Content)); err != nil {
		log.WithError(err).Error("failed to write report")
	}
}
