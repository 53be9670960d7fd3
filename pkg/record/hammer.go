package record

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	legacyPattern = regexp.MustCompile(`^(WP$)|(WP[^B])`)
	ncPattern     = regexp.MustCompile(`\$NC[$B]?$`)
)

// crossOfLorraine is the terminal's end-item character; Hammer writes it
// as a raw 0x87 byte where the entry means "$".
const crossOfLorraine = "\x87"

// HammerEntry is one timing interval observed by the Hammer harness for a
// single submitted command.
type HammerEntry struct {
	PNR      string
	Entry    string
	TimeStr  string
	Duration float64 // seconds

	// Legacy marks the older pricing entry form: bare WP, or WP not
	// followed by B.
	Legacy bool
	// NC is "NC" when the entry ends in a $NC qualifier, otherwise empty.
	NC string
}

// NewHammerEntry normalizes the entry text and classifies it.
func NewHammerEntry(pnr, entry, timeStr string, duration float64) *HammerEntry {
	entry = strings.ReplaceAll(entry, crossOfLorraine, "$")
	h := &HammerEntry{
		PNR:      pnr,
		Entry:    entry,
		TimeStr:  timeStr,
		Duration: duration,
		Legacy:   legacyPattern.MatchString(entry),
	}
	if ncPattern.MatchString(entry) {
		h.NC = "NC"
	}
	return h
}

// DefaultHammerEntry stands in for a legacy entry that was never seen.
func DefaultHammerEntry() *HammerEntry {
	return NewHammerEntry(Undefined, "XX", DefaultTimeStamp, 0)
}

// String is the one-line form used in the text dump.
func (h *HammerEntry) String() string {
	return fmt.Sprintf("%s- %s %s duration:%s %s", h.PNR, h.TimeStr, h.Entry, FormatSeconds(h.Duration), h.NC)
}
