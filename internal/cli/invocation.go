// Package cli turns command line arguments into a report run and maps its
// outcome to a process exit code.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/ahrav/go-gradebook/internal/dataset"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// Required file suffixes.
const (
	InputSuffix  = ".csv"
	OutputSuffix = ".json"
)

// argCount is the number of positional arguments: four inputs and one output.
const argCount = 5

// Invocation is a validated set of report arguments.
type Invocation struct {
	Inputs dataset.Paths
	Output string
}

// InvocationError reports unusable arguments. The message is printed
// followed by the usage line.
type InvocationError struct {
	Message  string
	ExitCode int
}

func (e *InvocationError) Error() string { return e.Message }

// Usage returns the usage line for program.
func Usage(program string) string {
	return fmt.Sprintf("Usage: %s [courses.csv] [students.csv] [tests.csv] [marks.csv] [output.json]", program)
}

// FileChecker reports whether path names an existing regular file.
type FileChecker func(path string) bool

// IsRegularFile is the FileChecker backed by the file system.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ParseInvocation checks the positional arguments: exactly four existing
// .csv inputs followed by a .json output path.
func ParseInvocation(args []string, exists FileChecker) (*Invocation, error) {
	if exists == nil {
		exists = IsRegularFile
	}

	if len(args) != argCount {
		return nil, &InvocationError{Message: "Error: arguments missing", ExitCode: ExitFailure}
	}

	inputs := args[:argCount-1]
	for _, name := range inputs {
		if !exists(name) {
			return nil, &InvocationError{
				Message:  fmt.Sprintf("Error: file %q does not exist.", name),
				ExitCode: ExitFailure,
			}
		}
		if err := checkSuffix(name, InputSuffix); err != nil {
			return nil, err
		}
	}

	out := args[argCount-1]
	if err := checkSuffix(out, OutputSuffix); err != nil {
		return nil, err
	}

	return &Invocation{
		Inputs: dataset.Paths{
			Courses:  inputs[0],
			Students: inputs[1],
			Tests:    inputs[2],
			Marks:    inputs[3],
		},
		Output: out,
	}, nil
}

func checkSuffix(name, suffix string) error {
	if strings.HasSuffix(name, suffix) {
		return nil
	}
	return &InvocationError{
		Message:  fmt.Sprintf("Error: file %s has invalid file type. Should end with %q", name, suffix),
		ExitCode: ExitFailure,
	}
}
