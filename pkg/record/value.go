// Package record holds the typed records parsed from server metrics logs and
// Hammer output.
package record

import (
	"math"
	"strconv"
	"strings"
)

// Value is a float reading taken from a metrics line.
//
// The zero Value means the pattern never matched and renders as "0". A
// matched reading renders in shortest decimal form and always keeps a
// fractional part, so "0.00" in the log becomes "0.0" and "0.30" becomes
// "0.3". The spreadsheet fed by these CSVs depends on that distinction.
type Value struct {
	f  float64
	ok bool
}

// Read wraps a matched reading.
func Read(f float64) Value {
	return Value{f: f, ok: true}
}

// readingOf wraps the result of a parser.First* call.
func readingOf(f float64, ok bool) Value {
	return Value{f: f, ok: ok}
}

// Float64 returns the numeric value.
func (v Value) Float64() float64 {
	return v.f
}

// Matched reports whether the value came from a log line.
func (v Value) Matched() bool {
	return v.ok
}

// String renders the value for CSV output.
func (v Value) String() string {
	if !v.ok {
		return "0"
	}
	s := strconv.FormatFloat(v.f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Sub returns v - o rounded to the four decimal places the logs carry.
// The result is matched when either operand was.
func (v Value) Sub(o Value) Value {
	return Value{f: round4(v.f - o.f), ok: v.ok || o.ok}
}

func round4(f float64) float64 {
	r := math.Round(f*1e4) / 1e4
	if r == 0 {
		return 0 // no "-0"
	}
	return r
}

// FormatSeconds renders a wall-clock duration in seconds, without a
// fractional part when the duration is whole.
func FormatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
