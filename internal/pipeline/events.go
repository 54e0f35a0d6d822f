package pipeline

import (
	"github.com/backmassage/webarchiver/internal/logging"
)

// Stage is the pipeline step an Event belongs to.
type Stage string

const (
	StageScan    Stage = "scan"
	StageArchive Stage = "archive"
	StageVerify  Stage = "verify"
	StageDelete  Stage = "delete"
)

// Outcome is the result of a stage.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
	OutcomePreview Outcome = "preview"
)

// Event reports progress. Index is 1-based; scan events carry Index 0 and
// the number of pairs found as Total.
type Event struct {
	Index    int
	Total    int
	HTMLPath string
	Stage    Stage
	Outcome  Outcome
	Detail   string
}

// Observer receives events in order from the goroutine running the
// pipeline.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

// LogObserver writes every event as a structured log record.
func LogObserver(log *logging.Logger) Observer {
	return ObserverFunc(func(e Event) {
		fields := map[string]interface{}{
			"index":   e.Index,
			"total":   e.Total,
			"stage":   string(e.Stage),
			"outcome": string(e.Outcome),
		}
		if e.HTMLPath != "" {
			fields["html"] = e.HTMLPath
		}
		if e.Detail != "" {
			fields["detail"] = e.Detail
		}
		log.Event("pipeline_"+string(e.Stage), fields)
	})
}

// multiObserver fans an event out to several observers.
type multiObserver []Observer

func (m multiObserver) Observe(e Event) {
	for _, o := range m {
		o.Observe(e)
	}
}
