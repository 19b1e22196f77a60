// Package pool implements a fixed-size worker pool fed by an unbounded FIFO
// job channel.
//
// A Pool of size N starts N long-lived workers at construction. Submit never
// blocks: jobs wait in the channel until a worker is free, so at most N jobs
// run at any instant no matter how fast they arrive. There is no shutdown
// path; workers live as long as the process.
package pool

import (
	"fmt"

	"github.com/twnkl2713/moodflow/internal/logger"
	"github.com/twnkl2713/moodflow/pkg/metrics"
)

// Pool owns the workers and the sending side of the job channel.
type Pool struct {
	workers []*worker
	queue   *jobQueue
	metrics metrics.PoolMetrics
}

// New starts a pool with size workers.
//
// Panics if size <= 0. poolMetrics may be nil, in which case nothing is
// recorded.
func New(size int, poolMetrics metrics.PoolMetrics) *Pool {
	if size <= 0 {
		panic(fmt.Sprintf("invalid pool size %d: must be > 0", size))
	}
	if poolMetrics == nil {
		poolMetrics = metrics.NewNoopPoolMetrics()
	}

	p := &Pool{
		workers: make([]*worker, 0, size),
		queue:   newJobQueue(),
		metrics: poolMetrics,
	}

	for id := range size {
		w := &worker{id: id, queue: p.queue, metrics: poolMetrics}
		p.workers = append(p.workers, w)
		go w.run()
	}

	logger.Debug("Worker pool started with %d workers", size)
	return p
}

// Submit enqueues job and returns immediately. Exactly one worker will
// eventually run it. Panics if job is nil.
func (p *Pool) Submit(job Job) {
	if job == nil {
		panic("pool: nil job")
	}
	depth := p.queue.push(job)
	p.metrics.RecordJobSubmitted()
	p.metrics.SetQueueDepth(depth)
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Pending returns the number of submitted jobs no worker has picked up yet.
func (p *Pool) Pending() int {
	return p.queue.len()
}
