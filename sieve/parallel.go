package sieve

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/cpu"
)

// Parallel sieves a range by running one Sieve per chunk on a bounded
// worker pool. Counts are accumulated per worker and merged after the
// join; streamed output is buffered per chunk and released strictly in
// range order no matter which chunks finish first. Each chunk's engine,
// stores and segment buffer are owned by exactly one worker; the only
// cross-goroutine state is the result handoff and the shared progress
// counter.
type Parallel struct {
	start   uint64
	stop    uint64
	cfg     config
	threads int
	chunks  []Chunk

	counts  [numCategories]uint64
	prog    *progress
	state   int
	seconds float64
}

// chunkResult is one worker's accumulator, padded so neighboring slots
// never share a cache line.
type chunkResult struct {
	counts [numCategories]uint64
	_      cpu.CacheLinePad
}

// NewParallel validates the range and configuration and partitions it
// into one chunk per worker.
func NewParallel(start, stop uint64, opts ...Option) (*Parallel, error) {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	threads := ClampThreads(cfg.threads)

	// construct a throwaway engine to fail fast on bad configuration
	if _, err := newWithConfig(start, stop, config{
		sieveKB: cfg.sieveKB, flags: cfg.flags,
		onTuplet: cfg.onTuplet, tupletK: cfg.tupletK,
	}); err != nil {
		return nil, err
	}

	return &Parallel{
		start:   start,
		stop:    stop,
		cfg:     cfg,
		threads: threads,
		chunks:  Partition(start, stop, threads),
		prog:    newProgress(start, stop),
	}, nil
}

// Run executes all chunks and merges their results. Like Sieve.Run it is
// single-shot and converts consumer-initiated stops into a nil error
// with partial results.
func (p *Parallel) Run() error {
	if p.state != stateReady {
		return ErrState
	}
	p.state = stateSieving
	began := time.Now()

	err := p.run()

	p.seconds = time.Since(began).Seconds()
	p.state = stateDone
	return err
}

func (p *Parallel) run() error {
	results := make([]chunkResult, len(p.chunks))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.threads)

	if p.cfg.onPrime == nil && p.cfg.onTuplet == nil {
		// counting only: no ordering requirement, merge after the join
		for i := range p.chunks {
			i := i
			g.Go(func() error {
				return p.runChunk(gctx, i, results, nil)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		p.merge(results)
		p.prog.finish()
		return nil
	}

	// streaming: per-chunk bounded buffers, released in range order. The
	// dispatcher runs aside so a full pool cannot block the emitter.
	outs := make([]chan batch, len(p.chunks))
	for i := range outs {
		outs[i] = make(chan batch, batchBuffers)
	}
	go func() {
		for i := range p.chunks {
			i := i
			g.Go(func() error {
				return p.runChunk(gctx, i, results, outs[i])
			})
		}
	}()

	stopped := false
	for i := range outs {
		for b := range outs[i] {
			if stopped {
				continue // drain so blocked workers can exit
			}
			if !p.emit(b) {
				stopped = true
				cancel()
			}
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}
	p.merge(results)
	if !stopped {
		p.prog.finish()
	}
	return nil
}

func (p *Parallel) emit(b batch) bool {
	for _, v := range b.primes {
		if !p.cfg.onPrime(v) {
			return false
		}
	}
	for _, t := range b.tuplets {
		if !p.cfg.onTuplet(t) {
			return false
		}
	}
	return true
}

func (p *Parallel) merge(results []chunkResult) {
	for i := range results {
		for c := 0; c < numCategories; c++ {
			p.counts[c] += results[i].counts[c]
		}
	}
}

// runChunk owns one chunk end to end: engine construction, the run, and
// the result handoff into the worker's padded slot.
func (p *Parallel) runChunk(ctx context.Context, i int, results []chunkResult, out chan<- batch) error {
	cfg := p.cfg
	cfg.prog = p.prog

	var b *batcher
	if out != nil {
		defer close(out)
		b = &batcher{ctx: ctx, out: out}
		if cfg.onPrime != nil {
			cfg.onPrime = b.prime
		}
		if cfg.onTuplet != nil {
			cfg.onTuplet = b.tuplet
		}
	}

	s, err := newWithConfig(p.chunks[i].Start, p.chunks[i].Stop, cfg)
	if err != nil {
		return err
	}
	if err := s.Run(); err != nil {
		return err
	}
	if b != nil {
		b.flush()
	}
	results[i].counts = s.counts
	return nil
}

// Counts returns the merged per-category totals.
func (p *Parallel) Counts() Counts {
	return countsOf(p.counts)
}

// Threads returns the worker count the engine settled on.
func (p *Parallel) Threads() int {
	return p.threads
}

// Chunks returns the partition driving this run.
func (p *Parallel) Chunks() []Chunk {
	return p.chunks
}

// Processed returns how many numbers of the range have been sieved.
func (p *Parallel) Processed() uint64 {
	return p.prog.value()
}

// Percent returns sieving completion in [0, 100].
func (p *Parallel) Percent() float64 {
	return p.prog.percent()
}

// Seconds returns the wall time of the completed Run.
func (p *Parallel) Seconds() float64 {
	return p.seconds
}

const (
	batchSize    = 1 << 12
	batchBuffers = 4
)

// batch is one slice of a chunk's output awaiting ordered release.
type batch struct {
	primes  []uint64
	tuplets [][]uint64
}

// batcher adapts a chunk engine's consumers into buffered batches. Its
// callbacks observe context cancellation so a stopped emitter unwinds
// every in-flight chunk cleanly.
type batcher struct {
	ctx context.Context
	out chan<- batch
	cur batch
}

func (b *batcher) prime(v uint64) bool {
	if b.ctx.Err() != nil {
		return false
	}
	b.cur.primes = append(b.cur.primes, v)
	if len(b.cur.primes) >= batchSize {
		b.flush()
	}
	return true
}

func (b *batcher) tuplet(members []uint64) bool {
	if b.ctx.Err() != nil {
		return false
	}
	// the engine reuses the members slice
	cp := make([]uint64, len(members))
	copy(cp, members)
	b.cur.tuplets = append(b.cur.tuplets, cp)
	if len(b.cur.tuplets) >= batchSize/8 {
		b.flush()
	}
	return true
}

func (b *batcher) flush() {
	if len(b.cur.primes) == 0 && len(b.cur.tuplets) == 0 {
		return
	}
	select {
	case b.out <- b.cur:
	case <-b.ctx.Done():
	}
	b.cur = batch{}
}
