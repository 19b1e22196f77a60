package pool

import "sync"

// jobQueue is the job channel between the accept loop and the workers.
//
// Unlike a Go channel it has no capacity, so push never blocks the producer.
// Items leave in the order they were pushed and each item is returned by
// exactly one pop.
type jobQueue struct {
	mu    sync.Mutex
	ready *sync.Cond
	items []Job
	head  int
}

func newJobQueue() *jobQueue {
	q := &jobQueue{}
	q.ready = sync.NewCond(&q.mu)
	return q
}

// push appends job and wakes one waiting worker. It returns the number of
// jobs waiting after the push.
func (q *jobQueue) push(job Job) int {
	q.mu.Lock()
	q.items = append(q.items, job)
	depth := len(q.items) - q.head
	q.mu.Unlock()

	q.ready.Signal()
	return depth
}

// pop blocks until a job is available and removes it. It also returns the
// number of jobs still waiting.
func (q *jobQueue) pop() (Job, int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.head == len(q.items) {
		q.ready.Wait()
	}

	job := q.items[q.head]
	q.items[q.head] = nil
	q.head++

	// Reclaim the consumed prefix once it dominates the backing array.
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head >= 1024 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}

	return job, len(q.items) - q.head
}

// len returns the number of jobs waiting.
func (q *jobQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}
