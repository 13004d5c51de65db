package domain

import "errors"

// ErrInvalidCourseWeights indicates that the tests of at least one course do
// not have weights summing to exactly 100.
var ErrInvalidCourseWeights = errors.New("invalid course weights")

// ErrInvalidDataset indicates that the loaded relations break a structural
// rule such as id uniqueness.
var ErrInvalidDataset = errors.New("invalid dataset")

// ErrMalformedRow indicates that a CSV row could not be decoded into its record type.
var ErrMalformedRow = errors.New("malformed row")

// ErrMissingColumn indicates that a CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// ErrInvalidConfig indicates that the configuration is invalid.
var ErrInvalidConfig = errors.New("invalid configuration")
