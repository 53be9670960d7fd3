package parser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	headerPattern  = regexp.MustCompile(`^-+(\d+)-+`)
	metricsFirst   = regexp.MustCompile(`^\d\d\d\d-.+Metrics - .?$`)
	metricsSecond  = regexp.MustCompile(`\*{58}`)
	metricsDivider = strings.Repeat("*", 58)
)

func collect(t *testing.T, input string, split func(*LineSource, RecordFunc) error) []Record {
	t.Helper()
	var groups []Record
	err := split(NewLineSource(strings.NewReader(input), "test"), func(lines Record) error {
		groups = append(groups, lines)
		return nil
	})
	require.NoError(t, err)
	return groups
}

func single(pattern *regexp.Regexp) func(*LineSource, RecordFunc) error {
	return func(src *LineSource, fn RecordFunc) error {
		return SplitRecords(context.Background(), src, pattern, fn)
	}
}

func dual(first, second *regexp.Regexp) func(*LineSource, RecordFunc) error {
	return func(src *LineSource, fn RecordFunc) error {
		return SplitRecordsDual(context.Background(), src, first, second, fn)
	}
}

func TestSplitRecords(t *testing.T) {
	input := "preamble\n-----1-----\n*ABCDEF\nWPB\n-----2-----\n*GHIJKL\n"

	groups := collect(t, input, single(headerPattern))

	require.Len(t, groups, 2)
	assert.Equal(t, Record{"-----1-----", "*ABCDEF", "WPB"}, groups[0])
	assert.Equal(t, Record{"-----2-----", "*GHIJKL"}, groups[1])
}

func TestSplitRecords_NoBoundary(t *testing.T) {
	groups := collect(t, "just\nsome\nlines\n", single(headerPattern))

	require.Len(t, groups, 1)
	assert.Empty(t, groups[0])
}

func TestSplitRecords_RoundTrip(t *testing.T) {
	lines := []string{
		"-----1-----", "*ABCDEF", "WPB", "",
		"-----2-----", "*GHIJKL",
		"-----3-----",
	}

	groups := collect(t, strings.Join(lines, "\n")+"\n", single(headerPattern))

	var joined []string
	for _, g := range groups {
		assert.NotEmpty(t, g)
		joined = append(joined, g...)
	}
	assert.Equal(t, lines, joined)
}

func TestSplitRecords_CallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	src := NewLineSource(strings.NewReader("-----1-----\n-----2-----\n-----3-----\n"), "test")

	err := SplitRecords(context.Background(), src, headerPattern, func(Record) error {
		calls++
		return stop
	})

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestSplitRecordsDual(t *testing.T) {
	input := strings.Join([]string{
		"noise before",
		"2005-01-01 10:00:00,123: INFO Metrics - .",
		metricsDivider,
		"PNR: 'ABCDEF'",
		"2005-01-01 10:00:09,001: INFO Metrics - .",
		metricsDivider,
		"PNR: 'GHIJKL'",
		"tail",
	}, "\n") + "\n"

	groups := collect(t, input, dual(metricsFirst, metricsSecond))

	require.Len(t, groups, 2)
	assert.Equal(t, Record{
		"2005-01-01 10:00:00,123: INFO Metrics - .",
		metricsDivider,
		"PNR: 'ABCDEF'",
	}, groups[0])
	assert.Equal(t, Record{
		"2005-01-01 10:00:09,001: INFO Metrics - .",
		metricsDivider,
		"PNR: 'GHIJKL'",
		"tail",
	}, groups[1])
}

func TestSplitRecordsDual_RequiresConsecutiveLines(t *testing.T) {
	input := strings.Join([]string{
		"2005-01-01 10:00:00,123: INFO Metrics - .",
		"something in between",
		metricsDivider,
	}, "\n") + "\n"

	groups := collect(t, input, dual(metricsFirst, metricsSecond))

	require.Len(t, groups, 1)
	assert.Empty(t, groups[0])
}

func TestSplitRecordsDual_RoundTrip(t *testing.T) {
	lines := []string{
		"2005-01-01 10:00:00,123: INFO Metrics - .",
		metricsDivider,
		"TRAVEL SEGMENTS: 2",
		"2005-01-01 10:00:01,123: INFO Metrics - .",
		metricsDivider,
	}

	groups := collect(t, strings.Join(lines, "\n"), dual(metricsFirst, metricsSecond))

	var joined []string
	for _, g := range groups {
		joined = append(joined, g...)
	}
	assert.Equal(t, lines, joined)
}

func TestSplitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pnr.txt")
	require.NoError(t, os.WriteFile(path, []byte("-----1-----\n*ABCDEF\n"), 0644))

	var groups []Record
	err := SplitFile(context.Background(), path, headerPattern, func(lines Record) error {
		groups = append(groups, lines)
		return nil
	})

	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "*ABCDEF", groups[0][1])
}

func TestSplitFileDual_FileNotFound(t *testing.T) {
	err := SplitFileDual(context.Background(), "/nonexistent/metrics.log", metricsFirst, metricsSecond,
		func(Record) error { return nil })
	assert.Error(t, err)
}
