package report_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ozontech/datapool/report"
)

type fakeReporter struct {
	reports int
	closed  int
	err     error
}

func (f *fakeReporter) Report(report.Snapshot) error { f.reports++; return f.err }
func (f *fakeReporter) Close() error                 { f.closed++; return f.err }

func TestMultiFansOut(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	r1, r2 := &fakeReporter{}, &fakeReporter{}
	m := report.NewMulti(r1, r2)

	a.NoError(m.Report(report.Snapshot{}))
	a.NoError(m.Close())
	a.Equal(1, r1.reports)
	a.Equal(1, r2.reports)
	a.Equal(1, r1.closed)
	a.Equal(1, r2.closed)
}

func TestMultiCollectsErrors(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	boom := errors.New("boom")
	ok := &fakeReporter{}
	m := report.NewMulti(&fakeReporter{err: boom}, ok)

	a.ErrorIs(m.Report(report.Snapshot{}), boom)
	a.ErrorIs(m.Close(), boom)

	// the failing reporter must not short-circuit the healthy one
	a.Equal(1, ok.reports)
	a.Equal(1, ok.closed)
}
