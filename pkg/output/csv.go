package output

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ccollicutt/perfsum/pkg/analyzer"
)

// Column headers. The downstream spreadsheet matches on this text, so it
// must not change.
var (
	PricingHeader = strings.Split(",PNR,TPF Legacy Time,TRAVEL SEGMENTS,"+
		"FARE MARKETS,PAX TYPES,PAX TYPE FARES,VIRTUAL MEM SIZE (MB),"+
		"TPF Exist Time,TPF-ATSE Time,ATSE V2 ELAPSED Time,"+
		"ATSE V2 CPU Time,ATAE Time,ATSE V2 Time,Fail,NC,"+
		"TO ITIN Time,TO ITIN CPU,TO FARE C Time,TO FARE C CPU,"+
		"TO FARE V Time,TO FARE V CPU,TO PRICING Time,TO PRICING CPU,"+
		"TO TAX Time,TO TAX CPU,TO FARE CALC Time,TO FARE CALC CPU,"+
		"ASv2 Time,DSSv2 Time,Baggage Time,Billing Time", ",")

	HammerHeader = strings.Split(",PNR,TPF Legacy Time,TPF Exist Time,NC", ",")

	MetricsHeader = strings.Split("PCC,PNR,Entry,TRAVEL SEGMENTS,"+
		"FARE MARKETS,PAX TYPES,PAX TYPE FARES,VIRTUAL MEM SIZE (MB),"+
		"TPF Exist Time,TPF-ATSE Time,ATSE V2 ELAPSED Time,"+
		"ATSE V2 CPU Time,ATAE Time,ATSE V2 Time,Fail,NC,"+
		"TO ITIN Time,TO ITIN CPU,TO FARE C Time,TO FARE C CPU,"+
		"TO FARE V Time,TO FARE V CPU,TO PRICING Time,TO PRICING CPU,"+
		"TO TAX Time,TO TAX CPU,TO FARE CALC Time,TO FARE CALC CPU,"+
		"ASv2 Time,DSSv2 Time,Baggage Time,Billing Time,LNIATA,Date/Time", ",")

	FdHeader = strings.Split("Entry,ETE Duration,ATSE Elapsed Time,ATSE CPU Time,"+
		"FD Process Elapsed,FD Process CPU,Itin Elapsed,Itin CPU,"+
		"Fare C Elapsed,Fare C CPU,Fare V Elapsed,Fare V CPU,"+
		"Fare Selector Elapsed,Fare Selector CPU,Tax Elapsed,Tax CPU,"+
		"Fare Display Elapsed,Fare Display CPU,Reqrsp Elapsed,Reqrsp CPU,"+
		"Travel Segs,Fare Markets,Pax Types,Pax Type Fares,"+
		"Virtual Mem Size,Request Size,Response Size", ",")
)

// csvFile writes CSV records plus the bare lines ("Run N", blank) that
// sit between them.
type csvFile struct {
	bw *bufio.Writer
	cw *csv.Writer
}

func newCSVFile(w io.Writer) *csvFile {
	bw := bufio.NewWriter(w)
	return &csvFile{bw: bw, cw: csv.NewWriter(bw)}
}

func (f *csvFile) row(fields []string) error {
	return f.cw.Write(fields)
}

func (f *csvFile) line(s string) error {
	f.cw.Flush()
	if err := f.cw.Error(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(f.bw, s)
	return err
}

func (f *csvFile) close() error {
	f.cw.Flush()
	if err := f.cw.Error(); err != nil {
		return err
	}
	return f.bw.Flush()
}

// rowFunc returns the row for one record and run, or false to skip it.
type rowFunc func(r *analyzer.PnrRecord, run int) ([]string, bool)

// writeRunBlocks writes one block per run: a "Run N" line, the header,
// a row per PNR that has data for that run, then a blank line.
func writeRunBlocks(w io.Writer, stats *analyzer.Stats, header []string, fn rowFunc) error {
	f := newCSVFile(w)
	records := stats.Records()

	for run := 0; run < stats.CalcMaxRuns(); run++ {
		if err := f.line(fmt.Sprintf("Run %d", run+1)); err != nil {
			return err
		}
		if err := f.row(header); err != nil {
			return err
		}
		for _, r := range records {
			row, ok := fn(r, run)
			if !ok {
				continue
			}
			if err := f.row(row); err != nil {
				return err
			}
		}
		if err := f.line(""); err != nil {
			return err
		}
	}
	return f.close()
}

// WritePricingCSV writes performance.csv for a pricing run.
func WritePricingCSV(w io.Writer, stats *analyzer.Stats) error {
	return writeRunBlocks(w, stats, PricingHeader, (*analyzer.PnrRecord).Row)
}

// WriteHammerCSV writes performance.csv for a run without metrics.
func WriteHammerCSV(w io.Writer, stats *analyzer.Stats) error {
	return writeRunBlocks(w, stats, HammerHeader, (*analyzer.PnrRecord).HammerRow)
}

// WriteMetricsCSV writes performance.csv for a metrics-only run.
func WriteMetricsCSV(w io.Writer, stats *analyzer.MetricsOnly) error {
	f := newCSVFile(w)
	if err := f.row(MetricsHeader); err != nil {
		return err
	}
	for _, row := range stats.Rows() {
		if err := f.row(row); err != nil {
			return err
		}
	}
	if err := f.line(""); err != nil {
		return err
	}
	return f.close()
}

// WriteFdCSV writes fd_performance.csv.
func WriteFdCSV(w io.Writer, stats *analyzer.FdStats) error {
	f := newCSVFile(w)
	if err := f.row(FdHeader); err != nil {
		return err
	}
	for _, e := range stats.Entries() {
		if err := f.row(e.Row()); err != nil {
			return err
		}
	}
	return f.close()
}

// WriteDump writes performance.out: a "-----N-----" line per PNR followed
// by the text form of its metrics and hammer entries.
func WriteDump(w io.Writer, stats *analyzer.Stats) error {
	bw := bufio.NewWriter(w)
	for i, r := range stats.Records() {
		fmt.Fprintf(bw, "-----%d-----\n", i+1)
		for _, line := range r.Lines() {
			fmt.Fprintln(bw, line)
		}
	}
	return bw.Flush()
}
