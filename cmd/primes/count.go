package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/TusharAgarwal123/primesieve/sieve"
)

func init() {
	rootCmd.AddCommand(newCountCmd())
}

func newCountCmd() *cobra.Command {
	var (
		twins       bool
		triplets    bool
		quadruplets bool
		quintuplets bool
		sextuplets  bool
		all         bool
		progress    bool
	)
	cmd := &cobra.Command{
		Use:   "count [start] <stop>",
		Short: "Count primes and prime k-tuplets in a range",
		Long: `The count command sieves [start, stop] and reports the number of
primes in the range. Tuplet flags add counts of constellations whose
members all lie in the range; with a single bound the range starts at 0.

Example:
  primes count 1e9
  primes count 1e12 2e12 --twins
  primes count 1e10 --all -t 8`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, stop, err := parseRange(args)
			if err != nil {
				return err
			}

			flags := sieve.CountPrimes
			if twins {
				flags |= sieve.CountTwins
			}
			if triplets {
				flags |= sieve.CountTriplets
			}
			if quadruplets {
				flags |= sieve.CountQuadruplets
			}
			if quintuplets {
				flags |= sieve.CountQuintuplets
			}
			if sextuplets {
				flags |= sieve.CountSextuplets
			}
			if all {
				flags = sieve.CountAll
			}
			return runCount(start, stop, flags, progress)
		},
	}
	cmd.Flags().BoolVar(&twins, "twins", false, "Also count twin primes")
	cmd.Flags().BoolVar(&triplets, "triplets", false, "Also count prime triplets")
	cmd.Flags().BoolVar(&quadruplets, "quadruplets", false, "Also count prime quadruplets")
	cmd.Flags().BoolVar(&quintuplets, "quintuplets", false, "Also count prime quintuplets")
	cmd.Flags().BoolVar(&sextuplets, "sextuplets", false, "Also count prime sextuplets")
	cmd.Flags().BoolVar(&all, "all", false, "Count every category")
	cmd.Flags().BoolVar(&progress, "progress", false, "Report sieving progress on stderr")
	return cmd
}

func runCount(start, stop uint64, flags sieve.Flags, progress bool) error {
	p, err := sieve.NewParallel(start, stop,
		sieve.WithFlags(flags),
		sieve.WithThreads(threads),
		sieve.WithSieveSize(sieveSize))
	if err != nil {
		return err
	}

	stopReporter := func() {}
	if progress && !quiet {
		done := make(chan struct{})
		finished := make(chan struct{})
		go func() {
			reportProgress(p, done)
			close(finished)
		}()
		stopReporter = func() {
			close(done)
			<-finished
		}
	}
	err = p.Run()
	stopReporter()
	if err != nil {
		return err
	}

	counts := p.Counts()
	printInfo("Sieved [%d, %d] with %d threads\n", start, stop, p.Threads())
	out.Printf("Primes: %d\n", counts.Primes)
	if flags&sieve.CountTwins != 0 {
		out.Printf("Twin primes: %d\n", counts.Twins)
	}
	if flags&sieve.CountTriplets != 0 {
		out.Printf("Prime triplets: %d\n", counts.Triplets)
	}
	if flags&sieve.CountQuadruplets != 0 {
		out.Printf("Prime quadruplets: %d\n", counts.Quadruplets)
	}
	if flags&sieve.CountQuintuplets != 0 {
		out.Printf("Prime quintuplets: %d\n", counts.Quintuplets)
	}
	if flags&sieve.CountSextuplets != 0 {
		out.Printf("Prime sextuplets: %d\n", counts.Sextuplets)
	}
	if showTime {
		out.Printf("Seconds: %.3f\n", p.Seconds())
	}
	return nil
}

// reportProgress rewrites a completion percentage on stderr until the
// run finishes.
func reportProgress(p *sieve.Parallel, done <-chan struct{}) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			fmt.Fprintf(os.Stderr, "\rSieving... %5.1f%%", p.Percent())
		case <-done:
			fmt.Fprintf(os.Stderr, "\rSieving... %5.1f%%\n", p.Percent())
			return
		}
	}
}
