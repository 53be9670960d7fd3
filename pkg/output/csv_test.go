package output

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/perfsum/pkg/analyzer"
)

const pricingRow = ",ABCDEF,4,2,2,1,164,1112,6,1.14,4.86,0.3,0.13,4.73,,,0.17,0.0,4.48,0.0,0.21,0.0,0,0,0,0,0,0,0.01,0.01,0.1099,0.0"

func loadStats(t *testing.T, withMetrics bool) *analyzer.Stats {
	t.Helper()
	ctx := context.Background()
	s := analyzer.NewStats()
	require.NoError(t, s.ExtractPnrList(ctx, "testdata/pnrs.txt"))
	if withMetrics {
		require.NoError(t, s.ExtractMetrics(ctx, "testdata/metrics.log", "AABBCC"))
	}
	require.NoError(t, s.ExtractHammerOut(ctx, "testdata/hammer.out"))
	require.NoError(t, s.CleanUp())
	return s
}

func TestHeaders(t *testing.T) {
	assert.Len(t, PricingHeader, 32)
	assert.Len(t, HammerHeader, 5)
	assert.Len(t, MetricsHeader, 34)
	assert.Len(t, FdHeader, 27)
	assert.Equal(t, "", PricingHeader[0])
	assert.Equal(t, "Date/Time", MetricsHeader[33])
}

func TestWritePricingCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePricingCSV(&buf, loadStats(t, true)))

	header := strings.Join(PricingHeader, ",")
	want := "Run 1\n" + header + "\n" + pricingRow + "\n\n" +
		"Run 2\n" + header + "\n\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteHammerCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHammerCSV(&buf, loadStats(t, false)))

	want := "Run 1\n,PNR,TPF Legacy Time,TPF Exist Time,NC\n,ABCDEF,4,6,\n\n" +
		"Run 2\n,PNR,TPF Legacy Time,TPF Exist Time,NC\n\n"
	assert.Equal(t, want, buf.String())
}

func TestWritePricingCSV_NoRuns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePricingCSV(&buf, analyzer.NewStats()))
	assert.Empty(t, buf.String())
}

func TestWriteMetricsCSV(t *testing.T) {
	s := analyzer.NewMetricsOnly("AABBCC")
	require.NoError(t, s.ExtractMetrics(context.Background(), "testdata/metrics.log"))

	var buf bytes.Buffer
	require.NoError(t, WriteMetricsCSV(&buf, s))

	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, strings.Join(MetricsHeader, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "B4T0,ABCDEF,WPBET-ITL,2,2,1,164,1112,0,0,4.86,"))
	assert.True(t, strings.HasSuffix(lines[1], `,AABBCC,"2005-01-01 10:00:00,123"`), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "B4T0,ZZZZZZ,"))
	assert.Equal(t, "", lines[3])
	assert.Equal(t, "", lines[4])
}

func TestWriteFdCSV(t *testing.T) {
	ctx := context.Background()
	s := analyzer.NewFdStats()
	require.NoError(t, s.ExtractHammerOut(ctx, "testdata/fd.out"))
	require.NoError(t, s.ExtractMetrics(ctx, "testdata/fd.log"))
	s.MergeMetrics()

	var buf bytes.Buffer
	require.NoError(t, WriteFdCSV(&buf, s))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Join(FdHeader, ","), lines[0])
	assert.Equal(t, "AAA/B4T0,1"+strings.Repeat(",0", 25), lines[1])
	assert.Equal(t, "FQDFWLON,3,2.5,0.6,0,0,0,0,0,0,0,0,0.05,0.01,0,0,0,0,0,0,1,0,0,0,0,1520,88010", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "RD1,2,1.5,0.5,"))
}

func TestWriteDump(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDump(&buf, loadStats(t, true)))

	want := "-----1-----\n" +
		"ABCDEF- total:4.86 cpu:0.3 atae:0.13 ts:2 fm:2 pt:1 ptf:164 vm:1112\n" +
		"ABCDEF- 10:00:00 WPBET-ITL duration:6 \n" +
		"-----2-----\n"
	assert.Equal(t, want, buf.String())
}
