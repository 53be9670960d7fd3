package record

import (
	"fmt"
	"regexp"

	"github.com/ccollicutt/perfsum/pkg/parser"
)

// Defaults for metric fields whose pattern is absent from a record.
const (
	Undefined        = "-UDEF-"
	FailedPNR        = "-FAIL-"
	DefaultTimeStamp = "00:00:00"
	DefaultDateTime  = "0000-00-00 00:00:00,000"
)

var (
	pnrPattern          = regexp.MustCompile(`PNR: '([A-Z]{6})'`)
	entryPattern        = regexp.MustCompile(`Entry: '([^']*)'`)
	pccPattern          = regexp.MustCompile(`PCC: '([^']*)'`)
	transIDPattern      = regexp.MustCompile(`TransID: '([^']*)'`)
	lniataPattern       = regexp.MustCompile(`LNIATA: '([^']*)'`)
	timeStampPattern    = regexp.MustCompile(`(\d+:\d+:\d+),`)
	dateTimePattern     = regexp.MustCompile(`(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d+):`)
	atseTimePattern     = regexp.MustCompile(`TSEMANAGERUTIL SERVICE +(\d{1,4}\.\d{2}) *(\d{1,4}\.\d{2})`)
	ataeTimePattern     = regexp.MustCompile(`ITIN ATAE +(\d+\.\d+) `)
	travelSegsPattern   = regexp.MustCompile(`TRAVEL SEGMENTS: +(\d+)`)
	fareMarketsPattern  = regexp.MustCompile(`FARE MARKETS: +(\d+)`)
	paxTypesPattern     = regexp.MustCompile(`PAX TYPES: +(\d+)`)
	paxTypeFaresPattern = regexp.MustCompile(`PAXTYPEFARES: +(\d+)`)
	virtualMemPattern   = regexp.MustCompile(`VIRTUAL MEM SIZE: +(\d+)`)
	asv2Pattern         = regexp.MustCompile(`^      ASv2 \|  [01] \|  [01] \| *(\d{1,4}\.\d{4})`)
	dssv2Pattern        = regexp.MustCompile(`^     DSSv2 \|  [01] \|  [01] \| *(\d{1,4}\.\d{4})`)
	baggagePattern      = regexp.MustCompile(`^   Baggage \|  [01] \|  [01] \| *(\d{1,4}\.\d{4})`)
	billingPattern      = regexp.MustCompile(`^   Billing \|  [01] \|  [01] \| *(\d{1,4}\.\d{4})`)
)

// servicePattern matches a "- TO <name> SERVICE" elapsed/CPU row.
func servicePattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`^- TO ` + name + ` +(\d{1,4}\.\d{2}) *(\d{1,4}\.\d{2})`)
}

var (
	toItinPattern     = servicePattern("ITIN SERVICE")
	toFareCPattern    = servicePattern("FARES C SERVICE")
	toFareVPattern    = servicePattern("FARES V SERVICE")
	toPricingPattern  = servicePattern("PRICING SERVICE")
	toTaxPattern      = servicePattern("TAX SERVICE")
	toFareCalcPattern = servicePattern("FARE CALC SERVICE")
)

// Timing is an elapsed/CPU pair reported for one service.
type Timing struct {
	Elapsed Value
	CPU     Value
}

func timingOf(lines []string, pattern *regexp.Regexp) Timing {
	elapsed, cpu, ok := parser.FirstTwoFloats(lines, pattern)
	return Timing{Elapsed: readingOf(elapsed, ok), CPU: readingOf(cpu, ok)}
}

func valueOf(lines []string, pattern *regexp.Regexp) Value {
	return readingOf(parser.FirstFloat(lines, pattern))
}

// Metric is one transaction's server-side timing and volume snapshot,
// parsed from a single metrics record.
type Metric struct {
	PNR       string
	Entry     string
	PCC       string
	TransID   string
	LNIATA    string
	TimeStamp string
	DateTime  string

	ATSE     Timing // TSEMANAGERUTIL SERVICE
	ATAETime Value

	ToItin     Timing
	ToFareC    Timing
	ToFareV    Timing
	ToPricing  Timing
	ToTax      Timing
	ToFareCalc Timing

	ASv2Elapsed    Value
	DSSv2Elapsed   Value
	BaggageElapsed Value
	BillingElapsed Value

	TravelSegs     int
	FareMarkets    int
	PaxTypes       int
	PaxTypeFares   int
	VirtualMemSize int
}

// NewMetric returns a Metric with every field at its default.
func NewMetric() *Metric {
	return &Metric{
		PNR:       Undefined,
		Entry:     Undefined,
		PCC:       Undefined,
		TransID:   Undefined,
		LNIATA:    Undefined,
		TimeStamp: DefaultTimeStamp,
		DateTime:  DefaultDateTime,
	}
}

// ParseMetric builds a Metric from the lines of one metrics record.
// Each field is extracted independently; absent fields keep their default.
func ParseMetric(lines []string) *Metric {
	m := NewMetric()

	m.PNR = parser.FirstString(lines, pnrPattern, m.PNR)
	m.Entry = parser.FirstString(lines, entryPattern, m.Entry)
	m.PCC = parser.FirstString(lines, pccPattern, m.PCC)
	m.TransID = parser.FirstString(lines, transIDPattern, m.TransID)
	m.LNIATA = parser.FirstString(lines, lniataPattern, m.LNIATA)
	m.TimeStamp = parser.FirstString(lines, timeStampPattern, m.TimeStamp)
	m.DateTime = parser.FirstString(lines, dateTimePattern, m.DateTime)

	m.ATSE = timingOf(lines, atseTimePattern)
	m.ATAETime = valueOf(lines, ataeTimePattern)

	m.ToItin = timingOf(lines, toItinPattern)
	m.ToFareC = timingOf(lines, toFareCPattern)
	m.ToFareV = timingOf(lines, toFareVPattern)
	m.ToPricing = timingOf(lines, toPricingPattern)
	m.ToTax = timingOf(lines, toTaxPattern)
	m.ToFareCalc = timingOf(lines, toFareCalcPattern)

	m.ASv2Elapsed = valueOf(lines, asv2Pattern)
	m.DSSv2Elapsed = valueOf(lines, dssv2Pattern)
	m.BaggageElapsed = valueOf(lines, baggagePattern)
	m.BillingElapsed = valueOf(lines, billingPattern)

	m.TravelSegs = parser.FirstInt(lines, travelSegsPattern)
	m.FareMarkets = parser.FirstInt(lines, fareMarketsPattern)
	m.PaxTypes = parser.FirstInt(lines, paxTypesPattern)
	m.PaxTypeFares = parser.FirstInt(lines, paxTypeFaresPattern)
	m.VirtualMemSize = parser.FirstInt(lines, virtualMemPattern)
	return m
}

// Failed reports whether the server flagged the transaction as failed.
func (m *Metric) Failed() bool {
	return m.PNR == FailedPNR
}

// VolumeColumns are the travel segment, fare market, pax type, pax type
// fare and virtual memory counts.
func (m *Metric) VolumeColumns() []string {
	return []string{
		fmt.Sprint(m.TravelSegs),
		fmt.Sprint(m.FareMarkets),
		fmt.Sprint(m.PaxTypes),
		fmt.Sprint(m.PaxTypeFares),
		fmt.Sprint(m.VirtualMemSize),
	}
}

// TimeColumns are ATSE elapsed, ATSE CPU, ATAE, and ATSE minus ATAE.
func (m *Metric) TimeColumns() []string {
	return []string{
		m.ATSE.Elapsed.String(),
		m.ATSE.CPU.String(),
		m.ATAETime.String(),
		m.ATSE.Elapsed.Sub(m.ATAETime).String(),
	}
}

// ServiceColumns are the per-service elapsed/CPU pairs followed by the
// ASv2, DSSv2, Baggage and Billing elapsed times.
func (m *Metric) ServiceColumns() []string {
	cols := make([]string, 0, 16)
	for _, t := range []Timing{m.ToItin, m.ToFareC, m.ToFareV, m.ToPricing, m.ToTax, m.ToFareCalc} {
		cols = append(cols, t.Elapsed.String(), t.CPU.String())
	}
	return append(cols,
		m.ASv2Elapsed.String(),
		m.DSSv2Elapsed.String(),
		m.BaggageElapsed.String(),
		m.BillingElapsed.String(),
	)
}

// String is the one-line form used in the text dump.
func (m *Metric) String() string {
	return fmt.Sprintf("%s- total:%s cpu:%s atae:%s ts:%d fm:%d pt:%d ptf:%d vm:%d",
		m.PNR, m.ATSE.Elapsed, m.ATSE.CPU, m.ATAETime,
		m.TravelSegs, m.FareMarkets, m.PaxTypes, m.PaxTypeFares, m.VirtualMemSize)
}
