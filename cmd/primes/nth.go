package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/TusharAgarwal123/primesieve"
)

func init() {
	rootCmd.AddCommand(newNthCmd())
}

func newNthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nth <n> [start]",
		Short: "Find the nth prime relative to a start value",
		Long: `The nth command finds the nth prime at or after start, or with a
negative n the |n|th prime at or below start. start defaults to 0.

Example:
  primes nth 1000000
  primes nth 10 1e12
  primes nth -1 1e9`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid index %q", args[0])
			}
			var start uint64
			if len(args) == 2 {
				if start, err = parseBound(args[1]); err != nil {
					return err
				}
			}
			return runNth(n, start)
		},
	}
	return cmd
}

func runNth(n int64, start uint64) error {
	p, err := primesieve.NthPrime(n, start)
	if err != nil {
		return err
	}
	fmt.Println(p)
	return nil
}
