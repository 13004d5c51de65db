// Package main provides the gradebook command: it turns courses, students,
// tests and marks CSV files into a per-student JSON report.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ahrav/go-gradebook/internal/cli"
)

func main() {
	code, err := newRootCmd().execute(context.Background(), os.Args[1:])
	if err != nil {
		var invErr *cli.InvocationError
		if errors.As(err, &invErr) {
			fmt.Fprintf(os.Stderr, "\n%s\n", invErr.Message)
			fmt.Fprintln(os.Stderr, cli.Usage(programName))
			os.Exit(invErr.ExitCode)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if code == cli.ExitOK {
			code = cli.ExitFailure
		}
	}
	os.Exit(code)
}
