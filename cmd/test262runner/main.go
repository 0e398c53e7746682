package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/jsgo/testrunner"
)

var (
	test262Dir string
	filter     string
	limit      int
	verbose    bool
)

func main() {
	root := &cobra.Command{
		Use:   "test262runner",
		Short: "test262runner runs the tc39 test262 conformance suite against jsgo",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	root.Flags().StringVar(&test262Dir, "dir", "test262", "path to test262 checkout")
	root.Flags().StringVar(&filter, "filter", "", "filter tests by path substring")
	root.Flags().IntVar(&limit, "limit", 0, "maximum number of tests to run (0 = all)")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (print each test result)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if _, err := os.Stat(test262Dir); os.IsNotExist(err) {
		return fmt.Errorf("test262 directory not found at %s (clone it with: git clone --depth 1 https://github.com/nicolo-ribaudo/tc39-test262-parser %s)", test262Dir, test262Dir)
	}

	cfg := testrunner.Config{
		Test262Dir: test262Dir,
		Filter:     filter,
		Limit:      limit,
		Verbose:    verbose,
	}

	results, summary := testrunner.Run(cfg)

	if !verbose {
		for _, r := range results {
			msg := ""
			if r.Message != "" {
				msg = " " + r.Message
			}
			fmt.Printf("%s %s%s\n", r.Result, r.Path, msg)
		}
	}

	fmt.Println()
	fmt.Println("=== Test262 Summary ===")
	fmt.Printf("Total:   %d\n", summary.Total)
	fmt.Printf("Passed:  %d\n", summary.Passed)
	fmt.Printf("Failed:  %d\n", summary.Failed)
	fmt.Printf("Skipped: %d\n", summary.Skipped)
	fmt.Printf("Errors:  %d\n", summary.Errors)
	if summary.Total > 0 {
		fmt.Printf("Pass rate: %.1f%% (%d/%d excluding skipped)\n",
			float64(summary.Passed)/float64(summary.Total-summary.Skipped)*100,
			summary.Passed,
			summary.Total-summary.Skipped)
	}
	fmt.Printf("Elapsed: %s\n", summary.Elapsed)

	if summary.Failed > 0 || summary.Errors > 0 {
		os.Exit(1)
	}
	return nil
}
