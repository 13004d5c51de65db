// Package workflow implements the Temporal workflow definitions of the gradebook.
//
// The report workflow runs the three stages of a report run as activities:
//
//   - ValidateWeights gates the run on the course weight invariant
//   - ComputeAverages derives course and total averages
//   - AssembleReport builds the nested per-student report
//
// Workflows must not contain non-deterministic operations such as random
// number generation, system time access, or external I/O. Such operations
// are delegated to activities.
package workflow
