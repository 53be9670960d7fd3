package record

import (
	"fmt"
	"regexp"

	"github.com/ccollicutt/perfsum/pkg/parser"
)

// DefaultStartTime is used when a fare display record has no start time.
const DefaultStartTime = "0000-00-00T00:00:00.000000"

var (
	toFareDisplayProcessPattern = servicePattern("FARE DISPLAY PROCESS")
	toFareSelectorPattern       = servicePattern("FARE SELECTOR SERVICE")
	toFareDisplayPattern        = servicePattern("FARE DISPLAY SERVICE")
	toReqrspPattern             = servicePattern("REQRSP SERVICE")
	requestResponsePattern      = regexp.MustCompile(`Trx \|.+\|.+\|.+\|.+\| +(\d+) \| +(\d+)`)
	startTimePattern            = regexp.MustCompile(`Start Time: '(.+)'`)
)

// FdMetric is the server-side snapshot of one fare display transaction.
type FdMetric struct {
	ATSE                 Timing
	ToFareDisplayProcess Timing
	ToItin               Timing
	ToFareC              Timing
	ToFareV              Timing
	ToFareSelector       Timing
	ToTax                Timing
	ToFareDisplay        Timing
	ToReqrsp             Timing

	TravelSegments int
	FareMarkets    int
	PaxTypes       int
	PaxTypeFares   int
	VirtualMemSize int
	RequestSize    int
	ResponseSize   int

	StartTime string
}

// NewFdMetric returns the placeholder attached to entries without metrics.
// Its fields are unmatched, so every column prints 0.
func NewFdMetric() *FdMetric {
	return &FdMetric{StartTime: DefaultStartTime}
}

// ParseFdMetric builds an FdMetric from one TRANSACTION MEASUREMENTS record.
func ParseFdMetric(lines []string) *FdMetric {
	m := &FdMetric{
		ATSE:                 timingOf(lines, atseTimePattern),
		ToFareDisplayProcess: timingOf(lines, toFareDisplayProcessPattern),
		ToItin:               timingOf(lines, toItinPattern),
		ToFareC:              timingOf(lines, toFareCPattern),
		ToFareV:              timingOf(lines, toFareVPattern),
		ToFareSelector:       timingOf(lines, toFareSelectorPattern),
		ToTax:                timingOf(lines, toTaxPattern),
		ToFareDisplay:        timingOf(lines, toFareDisplayPattern),
		ToReqrsp:             timingOf(lines, toReqrspPattern),

		TravelSegments: parser.FirstInt(lines, travelSegsPattern),
		FareMarkets:    parser.FirstInt(lines, fareMarketsPattern),
		PaxTypes:       parser.FirstInt(lines, paxTypesPattern),
		PaxTypeFares:   parser.FirstInt(lines, paxTypeFaresPattern),
		VirtualMemSize: parser.FirstInt(lines, virtualMemPattern),

		StartTime: parser.FirstString(lines, startTimePattern, DefaultStartTime),
	}
	m.RequestSize, m.ResponseSize = parser.FirstTwoInts(lines, requestResponsePattern)
	return m
}

// Columns renders the metric in fd_performance.csv column order.
func (m *FdMetric) Columns() []string {
	timings := []Timing{
		m.ATSE, m.ToFareDisplayProcess, m.ToItin, m.ToFareC, m.ToFareV,
		m.ToFareSelector, m.ToTax, m.ToFareDisplay, m.ToReqrsp,
	}
	cols := make([]string, 0, 2*len(timings)+7)
	for _, t := range timings {
		cols = append(cols, t.Elapsed.String(), t.CPU.String())
	}
	for _, n := range []int{
		m.TravelSegments, m.FareMarkets, m.PaxTypes, m.PaxTypeFares,
		m.VirtualMemSize, m.RequestSize, m.ResponseSize,
	} {
		cols = append(cols, fmt.Sprint(n))
	}
	return cols
}
