package analyzer

import (
	"context"
	"fmt"
	"regexp"

	"github.com/ccollicutt/perfsum/pkg/parser"
	"github.com/ccollicutt/perfsum/pkg/record"
)

var (
	dumpPNRPattern   = regexp.MustCompile(`^> +\*([A-Z]{6})`)
	dumpEntryPattern = regexp.MustCompile(`^> +(WP.*)\r`)
	dumpTimePattern  = regexp.MustCompile(`^ \d\d/\d\d (\d{6})`)
)

// DumpState is the position of the dump scanner within one entry.
type DumpState int

const (
	// StateStart expects a begin time or an entry.
	StateStart DumpState = iota
	// StateBeginFound has a begin time and expects the entry.
	StateBeginFound
	// StateEntryFound has an entry and expects its end time.
	StateEntryFound
)

func (s DumpState) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateBeginFound:
		return "beginFound"
	case StateEntryFound:
		return "entryFound"
	default:
		return fmt.Sprintf("DumpState(%d)", int(s))
	}
}

type dumpEvent int

const (
	eventTime dumpEvent = iota
	eventEntry
)

func (e dumpEvent) String() string {
	if e == eventTime {
		return "time"
	}
	return "entry"
}

type dumpTransition struct {
	from  DumpState
	event dumpEvent
}

// dumpTransitions lists the legal moves.
var dumpTransitions = map[dumpTransition]DumpState{
	{StateStart, eventTime}:       StateBeginFound,
	{StateStart, eventEntry}:      StateEntryFound,
	{StateBeginFound, eventEntry}: StateEntryFound,
	{StateEntryFound, eventTime}:  StateStart,
}

// dumpRecovery is where an illegal move lands.
var dumpRecovery = map[dumpEvent]DumpState{
	eventTime:  StateStart,
	eventEntry: StateEntryFound,
}

// dumpScanner tracks one record of a terminal dump file. In the dump, a
// time line follows every response, so an entry's begin time is normally
// the end time of the entry before it.
type dumpScanner struct {
	state   DumpState
	entry   string
	begin   string
	lastEnd string
}

// step applies event and reports whether the move was legal.
func (d *dumpScanner) step(event dumpEvent) (from DumpState, legal bool) {
	from = d.state
	next, legal := dumpTransitions[dumpTransition{from, event}]
	if !legal {
		next = dumpRecovery[event]
	}
	d.state = next
	return from, legal
}

// ExtractHammerDump reads a terminal dump file, where entries and
// time-stamp lines are interleaved and times are written as hhmmss.
func (s *Stats) ExtractHammerDump(ctx context.Context, path string) error {
	err := parser.SplitFile(ctx, path, recordHeaderPattern, func(lines parser.Record) error {
		if len(lines) == 0 {
			return nil
		}
		entries, err := s.scanDumpRecord(lines)
		if err != nil {
			return err
		}
		s.addHammers(entries)
		return nil
	})
	if err != nil {
		return fmt.Errorf("extracting dump entries from %s: %w", path, err)
	}
	return nil
}

// scanDumpRecord returns the entries of one record, each tagged with the
// PNR seen most recently when its end time arrived.
func (s *Stats) scanDumpRecord(lines []string) ([]*record.HammerEntry, error) {
	pnr := UnknownPNR
	var entries []*record.HammerEntry
	d := &dumpScanner{}

	for _, line := range lines {
		if m := dumpPNRPattern.FindStringSubmatch(line); m != nil {
			pnr = m[1]
		} else if m := dumpTimePattern.FindStringSubmatch(line); m != nil {
			ts := m[1]
			from, legal := d.step(eventTime)
			switch {
			case !legal:
				if err := s.illegal(pnr, from, eventTime, line); err != nil {
					return nil, err
				}
			case from == StateStart:
				d.begin = ts
			case from == StateEntryFound:
				duration, err := parser.TimeSpan(d.begin, ts, true)
				if err != nil {
					return nil, fmt.Errorf("PNR %s entry %q: %w", pnr, d.entry, err)
				}
				entries = append(entries, record.NewHammerEntry(pnr, d.entry, d.begin, duration))
				d.lastEnd = ts
			}
		} else if m := dumpEntryPattern.FindStringSubmatch(line); m != nil {
			from, legal := d.step(eventEntry)
			if !legal {
				if err := s.illegal(pnr, from, eventEntry, line); err != nil {
					return nil, err
				}
			} else if from == StateStart {
				d.begin = d.lastEnd
			}
			d.entry = m[1]
		}
	}
	return entries, nil
}

func (s *Stats) illegal(pnr string, from DumpState, event dumpEvent, line string) error {
	if s.strict {
		return fmt.Errorf("%w: PNR %s: %s in state %s", ErrIllegalTransition, pnr, event, from)
	}
	s.logger.Warn("illegal dump transition", "pnr", pnr, "state", from.String(), "event", event.String(), "line", line)
	return nil
}
