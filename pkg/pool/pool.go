// Package pool provides a small worker pool for elementwise pixel work.
// Every array-level operation of the sharing scheme is independent across
// positions, so callers split their arrays with Chunks and hand one chunk
// per task to Parallelize.
package pool

import (
	"io"
	"runtime"
	"sync"
	"sync/atomic"
)

// command tells a latent worker to evaluate a task at one index.
type command struct {
	i int
	// ctr counts tasks that still need to finish.
	ctr *int64
	f   func(int)
}

func worker(commands <-chan command, taskDone chan<- struct{}) {
	for c := range commands {
		c.f(c.i)
		atomic.AddInt64(c.ctr, -1)
		taskDone <- struct{}{}
	}
}

// Pool is a set of persistent workers used for parallelizing functions.
//
// Functions taking a *Pool accept a nil receiver, doing the equivalent work
// on the current goroutine instead, so parallelism never changes results.
type Pool struct {
	// commands is shared by all workers, making this a work stealing pool.
	commands    chan command
	taskDone    chan struct{}
	workerCount int
}

// NewPool creates a pool with a certain number of workers.
//
// If count <= 0, the number of available CPUs is used instead.
func NewPool(count int) *Pool {
	var p Pool

	if count <= 0 {
		count = runtime.NumCPU()
	}

	p.commands = make(chan command)
	p.taskDone = make(chan struct{})
	p.workerCount = count

	for i := 0; i < count; i++ {
		go worker(p.commands, p.taskDone)
	}

	return &p
}

// TearDown cleanly tears down a pool, stopping its workers.
func (p *Pool) TearDown() {
	close(p.commands)
}

// Workers returns the number of workers tasks may run on; 1 for a nil pool.
func (p *Pool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workerCount
}

// Parallelize calls f with every index in 0..count-1, blocking until all
// calls have returned. The calls may run concurrently, so f must only touch
// state owned by its index.
func (p *Pool) Parallelize(count int, f func(int)) {
	if p == nil {
		for i := 0; i < count; i++ {
			f(i)
		}
		return
	}

	ctr := int64(count)
	sent := 0
	for sent < count {
		cmd := command{i: sent, ctr: &ctr, f: f}
		// Interleave draining finished tasks with sending, otherwise all
		// workers could be blocked reporting completion.
		select {
		case p.commands <- cmd:
			sent++
		case <-p.taskDone:
		}
	}
	for atomic.LoadInt64(&ctr) > 0 {
		<-p.taskDone
	}
}

// Span is a half-open index range [Lo, Hi).
type Span struct {
	Lo, Hi int
}

// Chunks splits the range [0, total) into at most parts contiguous spans of
// near-equal size, covering every index exactly once.
func Chunks(total, parts int) []Span {
	if parts < 1 {
		parts = 1
	}
	if parts > total {
		parts = total
	}
	spans := make([]Span, 0, parts)
	for i := 0; i < parts; i++ {
		lo := i * total / parts
		hi := (i + 1) * total / parts
		if lo < hi {
			spans = append(spans, Span{Lo: lo, Hi: hi})
		}
	}
	return spans
}

// LockedReader wraps an io.Reader to be safe for concurrent reads.
//
// Which goroutine reads which bytes is raced, but no byte is ever read
// twice, so a randomness source stays a valid randomness source.
type LockedReader struct {
	reader io.Reader
	m      sync.Mutex
}

// NewLockedReader creates a LockedReader by wrapping an underlying value.
func NewLockedReader(r io.Reader) *LockedReader {
	return &LockedReader{reader: r}
}

// Read implements io.Reader for LockedReader.
func (r *LockedReader) Read(p []byte) (int, error) {
	r.m.Lock()
	defer r.m.Unlock()
	return r.reader.Read(p)
}
