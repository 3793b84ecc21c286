package simple_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozontech/datapool"
	"github.com/ozontech/datapool/report"
	"github.com/ozontech/datapool/report/simple"
)

func TestReportPrintsRates(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	var buf bytes.Buffer
	r := simple.New(&buf)

	now := time.Now()
	require.NoError(t, r.Report(report.Snapshot{
		Time:    now.Add(time.Second),
		Borrows: 1000,
		Returns: 1000,
		Bytes:   4096 * 1000,
		Stat:    datapool.Stat{NFree: 10, NCreated: 10},
	}))

	out := buf.String()
	a.Contains(out, "reuse=99.0%")
	a.Contains(out, "free=10")
	a.Contains(out, "created=10")
}

func TestReportAfterPoolReset(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	var buf bytes.Buffer
	r := simple.New(&buf)

	now := time.Now()
	require.NoError(t, r.Report(report.Snapshot{
		Time:    now.Add(time.Second),
		Borrows: 100,
		Stat:    datapool.Stat{NCreated: 50},
	}))
	buf.Reset()

	// a Reset between reports drops NCreated back below the last sample
	require.NoError(t, r.Report(report.Snapshot{
		Time:    now.Add(2 * time.Second),
		Borrows: 200,
		Stat:    datapool.Stat{NCreated: 3},
	}))

	out := buf.String()
	a.Contains(out, "reuse=100.0%")
	a.NotContains(out, "-")
	a.Contains(out, "created=3")
}

func TestZeroPeriodSkipped(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	var buf bytes.Buffer
	r := simple.New(&buf)
	require.NoError(t, r.Report(report.Snapshot{Time: time.Now().Add(-time.Hour)}))
	a.Zero(buf.Len())
}

func TestCloseWritesTotals(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	var buf bytes.Buffer
	r := simple.New(&buf)
	require.NoError(t, r.Report(report.Snapshot{
		Time:    time.Now().Add(time.Second),
		Borrows: 42,
		Returns: 40,
		Stat:    datapool.Stat{NCreated: 2},
	}))
	buf.Reset()

	require.NoError(t, r.Close())
	a.Contains(buf.String(), "total borrows=42 returns=40")
}
