package pool

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type idJob int

func (idJob) Run() {}

func TestJobQueue_FIFO(t *testing.T) {
	q := newJobQueue()
	for i := range 3000 {
		assert.Equal(t, i+1, q.push(idJob(i)))
	}

	for i := range 3000 {
		job, depth := q.pop()
		assert.Equal(t, idJob(i), job)
		assert.Equal(t, 3000-i-1, depth)
	}
	assert.Equal(t, 0, q.len())
}

func TestJobQueue_InterleavedPushPop(t *testing.T) {
	q := newJobQueue()
	next := 0
	for round := range 10 {
		for i := range 500 {
			q.push(idJob(round*500 + i))
		}
		for range 300 {
			job, _ := q.pop()
			require.Equal(t, idJob(next), job)
			next++
		}
	}
	for q.len() > 0 {
		job, _ := q.pop()
		require.Equal(t, idJob(next), job)
		next++
	}
	assert.Equal(t, 5000, next)
}

func TestJobQueue_PopBlocksUntilPush(t *testing.T) {
	q := newJobQueue()
	got := make(chan Job, 1)

	go func() {
		job, _ := q.pop()
		got <- job
	}()

	select {
	case <-got:
		t.Fatal("pop returned from an empty queue")
	case <-time.After(50 * time.Millisecond):
	}

	q.push(idJob(7))

	select {
	case job := <-got:
		assert.Equal(t, idJob(7), job)
	case <-time.After(time.Second):
		t.Fatal("pop did not wake up after push")
	}
}

func TestJobQueue_ConcurrentConsumersNoDuplicates(t *testing.T) {
	q := newJobQueue()
	const total = 10000
	const consumers = 8

	var mu sync.Mutex
	seen := make(map[idJob]int, total)
	var wg sync.WaitGroup

	for range consumers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range total / consumers {
				job, _ := q.pop()
				mu.Lock()
				seen[job.(idJob)]++
				mu.Unlock()
			}
		}()
	}

	for i := range total {
		q.push(idJob(i))
	}
	wg.Wait()

	assert.Len(t, seen, total)
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("job %d delivered %d times", id, n)
		}
	}
}
