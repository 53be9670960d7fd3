package parser

import (
	"regexp"
	"strconv"
)

// FirstMatch returns the submatches of the first line matching pattern,
// or nil when no line matches.
func FirstMatch(lines []string, pattern *regexp.Regexp) []string {
	for _, line := range lines {
		if m := pattern.FindStringSubmatch(line); m != nil {
			return m
		}
	}
	return nil
}

// FirstString returns the first capture group of the first matching line,
// or def when nothing matches.
func FirstString(lines []string, pattern *regexp.Regexp, def string) string {
	m := FirstMatch(lines, pattern)
	if len(m) < 2 {
		return def
	}
	return m[1]
}

// FirstFloat returns the first capture group parsed as a float. ok is false
// and the value zero when no line matches.
func FirstFloat(lines []string, pattern *regexp.Regexp) (v float64, ok bool) {
	m := FirstMatch(lines, pattern)
	if len(m) < 2 {
		return 0, false
	}
	return toFloat(m[1]), true
}

// FirstTwoFloats returns the first two capture groups parsed as floats.
func FirstTwoFloats(lines []string, pattern *regexp.Regexp) (a, b float64, ok bool) {
	m := FirstMatch(lines, pattern)
	if len(m) < 3 {
		return 0, 0, false
	}
	return toFloat(m[1]), toFloat(m[2]), true
}

// FirstInt is FirstFloat truncated to an integer.
func FirstInt(lines []string, pattern *regexp.Regexp) int {
	v, _ := FirstFloat(lines, pattern)
	return int(v)
}

// FirstTwoInts is FirstTwoFloats truncated to integers.
func FirstTwoInts(lines []string, pattern *regexp.Regexp) (int, int) {
	a, b, _ := FirstTwoFloats(lines, pattern)
	return int(a), int(b)
}

// AllMatches returns the submatches of every matching line in encounter order.
func AllMatches(lines []string, pattern *regexp.Regexp) [][]string {
	var matches [][]string
	for _, line := range lines {
		if m := pattern.FindStringSubmatch(line); m != nil {
			matches = append(matches, m)
		}
	}
	return matches
}

// AllStrings returns the first capture group of every matching line.
func AllStrings(lines []string, pattern *regexp.Regexp) []string {
	var values []string
	for _, m := range AllMatches(lines, pattern) {
		if len(m) > 1 {
			values = append(values, m[1])
		}
	}
	return values
}

// toFloat converts captured digits. Captures come from numeric patterns, so
// a parse failure only happens on pathological input and reads as zero.
func toFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
