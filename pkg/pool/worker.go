package pool

import (
	"runtime/debug"
	"time"

	"github.com/twnkl2713/moodflow/internal/logger"
	"github.com/twnkl2713/moodflow/pkg/metrics"
)

// worker owns one goroutine for the life of the process.
type worker struct {
	id      int
	queue   *jobQueue
	metrics metrics.PoolMetrics
}

// run receives and executes jobs forever. The queue is never closed, so run
// never returns.
func (w *worker) run() {
	for {
		job, depth := w.queue.pop()
		w.metrics.SetQueueDepth(depth)
		w.execute(job)
	}
}

// execute runs one job to completion. A panicking job is logged and the
// worker keeps serving, so the pool never shrinks below its configured size.
func (w *worker) execute(job Job) {
	logger.Debug("Worker %d executing job", w.id)

	w.metrics.RecordJobStarted(w.id)
	start := time.Now()
	panicked := true

	defer func() {
		if panicked {
			r := recover()
			logger.Error("Worker %d recovered from job panic: %v\n%s", w.id, r, debug.Stack())
		}
		w.metrics.RecordJobCompleted(w.id, time.Since(start), panicked)
	}()

	job.Run()
	panicked = false
}
