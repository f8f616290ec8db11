// Command limigo checks language inclusion between two automata read from
// Timbuk-style text files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "limigo",
		Short: "Check language inclusion between two automata",
	}
	root.AddCommand(newCheckCmd())
	root.AddCommand(newVerifyCmd())

	// Flag parsing, argument validation and command lookup all fail before
	// any PersistentPreRun hook runs, so an error while started is false is
	// a usage mistake.
	started := false
	root.PersistentPreRun = func(*cobra.Command, []string) { started = true }

	if err := root.Execute(); err != nil {
		if !started || isUsageError(err) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "limigo: internal error:", err)
		os.Exit(2)
	}
}

// usageError marks an error as a command-line usage mistake rather than an
// internal failure, so main can pick the right exit code.
type usageError struct{ err error }

func (u *usageError) Error() string { return u.err.Error() }
func (u *usageError) Unwrap() error { return u.err }

func newUsageError(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

func isUsageError(err error) bool {
	_, ok := err.(*usageError)
	return ok
}
