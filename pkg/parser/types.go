// Package parser provides the line-level building blocks for reading server
// metrics logs and Hammer output: pattern extraction, time-of-day spans and
// splitting a file into records.
package parser

// Record is one contiguous group of lines produced by the record splitter.
// Lines keep any trailing carriage return; only the newline is removed.
type Record []string

// RecordFunc receives each record in file order. Returning an error stops
// the scan and the error is passed back to the caller.
type RecordFunc func(lines Record) error
