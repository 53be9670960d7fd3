package parser

import (
	"context"
	"errors"
	"io"
	"regexp"
)

// SplitRecords groups lines into records. Every line matching boundary
// starts a new record and belongs to it. Lines before the first boundary
// are dropped. The last record is delivered at end of input; when the input
// has no boundary at all fn receives a single empty record.
func SplitRecords(ctx context.Context, src *LineSource, boundary *regexp.Regexp, fn RecordFunc) error {
	collecting := false
	var group Record

	for {
		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if boundary.MatchString(line) {
			if collecting {
				if err := fn(group); err != nil {
					return err
				}
				group = nil
			} else {
				collecting = true
			}
		}
		if collecting {
			group = append(group, line)
		}
	}

	return fn(group)
}

// SplitRecordsDual is SplitRecords where a boundary is two consecutive
// lines: first matches line n and second matches line n+1. The record
// starts with line n. The scan keeps one line of lookback.
func SplitRecordsDual(ctx context.Context, src *LineSource, first, second *regexp.Regexp, fn RecordFunc) error {
	collecting := false
	var group Record
	previous := ""
	seen := false

	for {
		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if first.MatchString(previous) && second.MatchString(line) {
			if collecting {
				if err := fn(group); err != nil {
					return err
				}
				group = nil
			} else {
				collecting = true
			}
		}
		if collecting {
			group = append(group, previous)
		}
		previous = line
		seen = true
	}

	if collecting && seen {
		group = append(group, previous)
	}
	return fn(group)
}

// SplitFile opens path and runs SplitRecords over it.
func SplitFile(ctx context.Context, path string, boundary *regexp.Regexp, fn RecordFunc) error {
	src, err := OpenLineSource(path)
	if err != nil {
		return err
	}
	defer src.Close()

	return SplitRecords(ctx, src, boundary, fn)
}

// SplitFileDual opens path and runs SplitRecordsDual over it.
func SplitFileDual(ctx context.Context, path string, first, second *regexp.Regexp, fn RecordFunc) error {
	src, err := OpenLineSource(path)
	if err != nil {
		return err
	}
	defer src.Close()

	return SplitRecordsDual(ctx, src, first, second, fn)
}
