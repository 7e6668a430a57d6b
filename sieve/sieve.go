// Package sieve is the segmented, wheel-factorized sieve of Eratosthenes
// engine. A Sieve processes one contiguous range; Partition and Parallel
// split a large range into density-balanced chunks and run one engine per
// chunk with deterministic aggregation.
package sieve

import (
	"fmt"
	"math"
	"time"

	"github.com/TusharAgarwal123/primesieve/internal/erat"
	"github.com/TusharAgarwal123/primesieve/internal/primegen"
	"github.com/TusharAgarwal123/primesieve/internal/wheel"
)

// MaxStop is the largest supported upper bound.
const MaxStop = math.MaxUint64

const (
	stateReady = iota
	stateSieving
	stateDone
)

// Sieve sieves one range [start, stop]. It is single-shot: after Run
// completes the engine is terminal and a new range needs a new engine.
// A Sieve must not be shared across goroutines.
type Sieve struct {
	start uint64
	stop  uint64
	cfg   config

	counts  [numCategories]uint64
	prog    *progress
	state   int
	seconds float64

	// sieving state
	sieveBytes uint64
	buf        []byte
	segBase    uint64
	firstBase  uint64
	stopByte   uint64
	maxSmall   uint64
	maxMedium  uint64

	small  *erat.Small
	medium *erat.Medium
	big    *erat.Big
	gen    *primegen.Generator
}

// New validates the range and configuration and prepares an engine. All
// configuration errors surface here; Run performs no validation.
func New(start, stop uint64, opts ...Option) (*Sieve, error) {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	return newWithConfig(start, stop, cfg)
}

func newWithConfig(start, stop uint64, cfg config) (*Sieve, error) {
	if start > stop {
		return nil, fmt.Errorf("%w: start %d > stop %d", ErrConfig, start, stop)
	}
	if cfg.onTuplet != nil && (cfg.tupletK < 2 || cfg.tupletK > 6) {
		return nil, fmt.Errorf("%w: tuplet size %d not in [2, 6]", ErrConfig, cfg.tupletK)
	}

	kb := cfg.sieveKB
	if kb == 0 {
		kb = DefaultSieveSize()
	}
	kb = ClampSieveSize(kb)

	s := &Sieve{
		start:      start,
		stop:       stop,
		cfg:        cfg,
		sieveBytes: uint64(kb) << 10,
		prog:       cfg.prog,
	}
	if s.prog == nil {
		s.prog = newProgress(start, stop)
	}

	if stop >= 7 {
		sieveStart := start
		if sieveStart < 7 {
			sieveStart = 7
		}
		s.segBase = wheel.ByteIndex(sieveStart)
		s.firstBase = s.segBase
		s.stopByte = wheel.ByteIndex(stop)
		s.maxSmall = s.sieveBytes * 3 / 4
		s.maxMedium = s.sieveBytes * 5

		var err error
		if s.small, err = erat.NewSmall(stop, s.sieveBytes, s.maxSmall); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrConfig, err)
		}
		if s.medium, err = erat.NewMedium(stop, s.sieveBytes, s.maxMedium); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrConfig, err)
		}
		sqrt := isqrt(stop)
		if s.big, err = erat.NewBig(stop, s.sieveBytes, sqrt); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrConfig, err)
		}
		s.gen = primegen.New(sqrt)
		s.buf = make([]byte, s.sieveBytes+8)
	}
	return s, nil
}

// Run sieves the whole range, accumulating counts and streaming to any
// configured consumers. A consumer-initiated stop is not an error: Run
// returns nil and the counts reflect the partial result.
func (s *Sieve) Run() error {
	if s.state != stateReady {
		return ErrState
	}
	s.state = stateSieving
	began := time.Now()

	err := s.run()

	s.seconds = time.Since(began).Seconds()
	s.state = stateDone
	if err == errStopped {
		return nil
	}
	if err == nil && s.cfg.prog == nil {
		// the progress is owned, not shared with sibling chunks
		s.prog.finish()
	}
	return err
}

func (s *Sieve) run() error {
	if err := s.smallSweep(); err != nil {
		return err
	}
	if s.stop < 7 {
		return nil
	}
	for s.segBase <= s.stopByte {
		if err := s.sieveSegment(); err != nil {
			return err
		}
	}
	return nil
}

// Counts returns the per-category totals accumulated so far.
func (s *Sieve) Counts() Counts {
	return countsOf(s.counts)
}

// SieveSize returns the segment size in kilobytes the engine settled on.
func (s *Sieve) SieveSize() int {
	return int(s.sieveBytes >> 10)
}

// Processed returns how many numbers of the range have been sieved. The
// value is monotonically non-decreasing.
func (s *Sieve) Processed() uint64 {
	return s.prog.value()
}

// Percent returns sieving completion in [0, 100].
func (s *Sieve) Percent() float64 {
	return s.prog.percent()
}

// Seconds returns the wall time of the completed Run.
func (s *Sieve) Seconds() float64 {
	return s.seconds
}

// isqrt returns the integer square root of n.
func isqrt(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	x := uint64(math.Sqrt(float64(n)))
	for x > 0 && x > n/x {
		x--
	}
	for x+1 <= n/(x+1) {
		x++
	}
	return x
}
