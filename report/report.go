// Package report renders periodic observations of a running pool benchmark.
package report

import (
	"time"

	"go.uber.org/multierr"

	"github.com/ozontech/datapool"
)

// Snapshot is one periodic observation. Counters are cumulative since the
// start of the run; Stat carries the pool's own best-effort counters.
type Snapshot struct {
	Time    time.Time
	Borrows uint64
	Returns uint64
	Bytes   uint64 // payload bytes moved through borrowed handles
	Stat    datapool.Stat
}

type Reporter interface {
	Report(Snapshot) error
	Close() error
}

// Multi fans every snapshot out to several reporters.
type Multi []Reporter

func NewMulti(nested ...Reporter) Multi { return Multi(nested) }

func (m Multi) Report(s Snapshot) error {
	var err error
	for _, r := range m {
		err = multierr.Append(err, r.Report(s))
	}
	return err
}

func (m Multi) Close() error {
	var err error
	for _, r := range m {
		err = multierr.Append(err, r.Close())
	}
	return err
}
