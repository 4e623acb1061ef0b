package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"mapdex/internal/db"
)

var (
	submissionDesc = prometheus.NewDesc(
		"mapdex_submissions_total",
		"Total entry submission count by outcome",
		[]string{"outcome"},
		nil,
	)
)

// SubmissionCollector is a custom Prometheus collector that reads submission
// outcome counters from the database on each scrape.
type SubmissionCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *SubmissionCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- submissionDesc
}

// Collect queries the database for all submission outcomes and emits them as
// counters.
func (c *SubmissionCollector) Collect(ch chan<- prometheus.Metric) {
	stats, err := c.db.GetAllSubmissionOutcomes(context.Background())
	if err != nil {
		slog.Error("failed to collect submission metrics", "error", err)
		return
	}
	for _, s := range stats {
		ch <- prometheus.MustNewConstMetric(
			submissionDesc,
			prometheus.CounterValue,
			float64(s.Count),
			s.Outcome,
		)
	}
}

// Recorder provides async submission outcome recording.
type Recorder struct {
	db *db.DB
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the custom collector and initializes the recorder.
// Must be called once at startup.
func Init(database *db.DB) {
	recorderOnce.Do(func() {
		recorder = &Recorder{db: database}
		prometheus.MustRegister(&SubmissionCollector{db: database})
	})
}

// RecordSubmission asynchronously records a submission outcome.
func RecordSubmission(outcome string) {
	if recorder == nil {
		return
	}
	go func() {
		if err := recorder.db.IncrementSubmissionOutcome(context.Background(), outcome); err != nil {
			slog.Error("failed to record submission outcome", "outcome", outcome, "error", err)
		}
	}()
}
