package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/TusharAgarwal123/primesieve"
)

func init() {
	rootCmd.AddCommand(newPrintCmd())
}

func newPrintCmd() *cobra.Command {
	var (
		tuplet int
		count  uint64
	)
	cmd := &cobra.Command{
		Use:   "print [start] <stop>",
		Short: "Print primes or prime k-tuplets in a range",
		Long: `The print command writes every prime in [start, stop] to stdout, one
per line and in ascending order. With --tuplet k it prints prime
k-tuplets instead, one constellation per line. With -n it prints the
first n primes at or above start and ignores the stop bound.

Example:
  primes print 100
  primes print 1e6 2e6 --tuplet 2
  primes print 1e9 -n 10`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("number") {
				start, err := parseBound(args[0])
				if err != nil {
					return err
				}
				if tuplet != 0 {
					return fmt.Errorf("-n and --tuplet cannot be combined")
				}
				return runPrintN(start, count)
			}
			start, stop, err := parseRange(args)
			if err != nil {
				return err
			}
			return runPrint(start, stop, tuplet)
		},
	}
	cmd.Flags().IntVar(&tuplet, "tuplet", 0, "Print k-tuplets for k in [2, 6] instead of primes")
	cmd.Flags().Uint64VarP(&count, "number", "n", 0, "Print the first n primes at or above start")
	return cmd
}

func runPrint(start, stop uint64, tuplet int) error {
	began := time.Now()
	w := bufio.NewWriterSize(os.Stdout, 1<<16)
	buf := make([]byte, 0, 64)

	var err error
	if tuplet == 0 {
		err = primesieve.Generate(start, stop, func(p uint64) bool {
			buf = strconv.AppendUint(buf[:0], p, 10)
			buf = append(buf, '\n')
			_, werr := w.Write(buf)
			return werr == nil
		})
	} else {
		err = primesieve.Tuplets(start, stop, tuplet, func(members []uint64) bool {
			buf = buf[:0]
			for i, m := range members {
				if i > 0 {
					buf = append(buf, ' ')
				}
				buf = strconv.AppendUint(buf, m, 10)
			}
			buf = append(buf, '\n')
			_, werr := w.Write(buf)
			return werr == nil
		})
	}
	if err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if showTime {
		out.Printf("Seconds: %.3f\n", time.Since(began).Seconds())
	}
	return nil
}

func runPrintN(start, n uint64) error {
	w := bufio.NewWriterSize(os.Stdout, 1<<16)
	buf := make([]byte, 0, 32)
	err := primesieve.GenerateN(start, n, func(p uint64) bool {
		buf = strconv.AppendUint(buf[:0], p, 10)
		buf = append(buf, '\n')
		_, werr := w.Write(buf)
		return werr == nil
	})
	if err != nil {
		return err
	}
	return w.Flush()
}
