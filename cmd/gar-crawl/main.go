// Command gar-crawl is a thin CLI wrapper around the crawler library: it
// owns flag parsing and output only, none of the crawl logic itself, per
// the library's external-collaborator boundary.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/garlic0x1/gar-crawl/crawler"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

type flags struct {
	depth    uint
	workers  int
	timeout  int
	revisit  bool
	verbose  bool
	confine  bool
}

func run(args []string) int {
	var f flags

	root := &cobra.Command{
		Use:           "gar-crawl [seed]",
		Short:         "Bounded breadth-first web crawler",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			seeds, err := seedsFrom(cmdArgs)
			if err != nil {
				return err
			}
			for _, seed := range seeds {
				if err := crawlOne(seed, f); err != nil {
					return err
				}
			}
			return nil
		},
	}

	root.SetArgs(args)
	root.Flags().UintVarP(&f.depth, "depth", "d", 2, "maximum crawl depth")
	root.Flags().IntVarP(&f.workers, "workers", "w", 40, "concurrent worker bound")
	root.Flags().IntVarP(&f.timeout, "timeout", "t", 10, "per-request timeout, seconds")
	root.Flags().BoolVarP(&f.revisit, "revisit", "r", false, "do not gate re-enqueue on the visited set")
	root.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log every fetched URL")
	root.Flags().BoolVarP(&f.confine, "confine", "c", false, "alias for whitelist(seed): stay on the seed's own URL text")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gar-crawl:", err)
		return 1
	}
	return 0
}

// seedsFrom returns the positional seed argument, or, absent one, one seed
// per non-empty line read from stdin.
func seedsFrom(args []string) ([]string, error) {
	if len(args) == 1 {
		return args[:1], nil
	}

	var seeds []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			seeds = append(seeds, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading seeds from stdin: %w", err)
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("no seed URL given on the command line or stdin")
	}
	return seeds, nil
}

// crawlOne builds a crawler for a single seed and runs it, printing every
// fetched URL to stdout. Exit codes are 0 on completion regardless of
// per-URL fetch errors; only seed-parse failure, an invalid selector, or a
// configuration error produce a non-zero exit, which is what returning a
// non-nil error here drives.
func crawlOne(seed string, f flags) error {
	b := crawler.NewBuilder().
		Depth(f.depth).
		Workers(f.workers).
		Timeout(f.timeout, 0).
		Revisit(f.revisit).
		AddDefaultPropagators().
		OnPage(func(args *crawler.HandlerArgs) {
			if f.verbose {
				fmt.Fprintf(os.Stderr, "fetched %s (depth %d)\n", args.Page.URL, args.Page.Depth)
			}
			fmt.Println(args.Page.URL)
		})

	if f.confine {
		b = b.Whitelist(seed)
	}

	c, err := b.Build()
	if err != nil {
		return fmt.Errorf("building crawler: %w", err)
	}

	fetchErrors, err := c.Crawl(seed)
	if err != nil {
		return fmt.Errorf("crawling %s: %w", seed, err)
	}
	for _, ferr := range fetchErrors {
		fmt.Fprintln(os.Stderr, "gar-crawl:", ferr)
	}
	return nil
}
