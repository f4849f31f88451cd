package pipeline

import (
	"context"
	"fmt"
)

// SaveFunc persists one finished job's result. Batch waits for it
// before starting the next job.
type SaveFunc func(job Job, result Result) error

// Batch processes jobs strictly sequentially: job N's result is fully
// handled, file writes included, before job N+1 starts. A single job's
// failure is logged and does not abort the remainder.
func (r *Runner) Batch(ctx context.Context, jobs []Job, save SaveFunc, emit func(Event)) (succeeded, failed int) {
	for i, job := range jobs {
		emit(Event{Type: EventLog, Message: fmt.Sprintf("[%d/%d] Processing %s", i+1, len(jobs), job.AudioPath)})

		events, err := r.Run(ctx, job)
		if err != nil {
			emit(Event{Type: EventLog, Message: fmt.Sprintf("Failed to start job for %s: %v", job.AudioPath, err)})
			failed++
			continue
		}

		var result *Result
		for ev := range events {
			if ev.Type == EventResult {
				result = ev.Result
			}
			emit(ev)
		}

		if result == nil {
			failed++
			continue
		}

		if err := save(job, *result); err != nil {
			emit(Event{Type: EventLog, Message: fmt.Sprintf("Failed to save results for %s: %v", job.AudioPath, err)})
			failed++
			continue
		}
		succeeded++
	}

	emit(Event{Type: EventLog, Message: fmt.Sprintf("Batch complete: %d succeeded, %d failed", succeeded, failed)})
	return succeeded, failed
}
