package workers

import (
	"sync"
)

// Task is a unit of work executed by the pool.
type Task func()

// Pool is a fixed-size worker pool over a single shared unbounded queue.
// Tasks are picked up by whichever worker is free first; execution order
// across workers is not guaranteed beyond per-queue submission order.
type Pool struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Task
	closed bool
	wg     sync.WaitGroup
	size   int
}

// DefaultSize is the pool size used when the configuration does not set one.
const DefaultSize = 4

// New starts a pool of size workers; zero or negative selects DefaultSize.
func New(size int) *Pool {
	if size <= 0 {
		size = DefaultSize
	}
	p := &Pool{size: size}
	p.cond = sync.NewCond(&p.mu)

	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.worker()
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return p.size }

// Submit enqueues a task. It never blocks and applies no backpressure;
// the queue is unbounded. Submitting to a closed pool silently drops the
// task, matching the no-drain shutdown contract.
func (p *Pool) Submit(task Task) {
	if task == nil {
		return
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.queue = append(p.queue, task)
	p.mu.Unlock()
	p.cond.Signal()
}

// Pending returns the current queue depth.
func (p *Pool) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// Close stops the workers. Tasks still queued are discarded; tasks already
// running finish. Close is idempotent and returns after every worker has
// exited.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.wg.Wait()
		return
	}
	p.closed = true
	p.queue = nil
	p.mu.Unlock()
	p.cond.Broadcast()
	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if p.closed {
			p.mu.Unlock()
			return
		}
		task := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		task()
	}
}
