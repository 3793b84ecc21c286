// Package simple prints human-readable per-second pool rates.
package simple

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ozontech/datapool/report"
)

type Reporter struct {
	w        io.Writer
	start    time.Time
	lastTime time.Time
	last     report.Snapshot
}

func New(w io.Writer) *Reporter {
	now := time.Now()
	return &Reporter{w: w, start: now, lastTime: now}
}

func (r *Reporter) Report(s report.Snapshot) error {
	ms := s.Time.Sub(r.lastTime).Milliseconds()
	if ms <= 0 {
		return nil
	}

	borrows := s.Borrows - r.last.Borrows
	size := s.Bytes - r.last.Bytes

	// NCreated drops back to zero when the pool is Reset mid-run
	var created uint64
	if s.Stat.NCreated > r.last.Stat.NCreated {
		created = uint64(s.Stat.NCreated - r.last.Stat.NCreated)
	}

	reuse := 100.0
	if created >= borrows {
		reuse = 0
	} else if borrows > 0 {
		reuse = float64(borrows-created) / float64(borrows) * 100
	}

	_, err := fmt.Fprintf(
		r.w,
		"borrow/s=%.2f reuse=%.1f%% rate=%s/s free=%d created=%d\n",
		float64(borrows)*1000/float64(ms),
		reuse,
		humanize.Bytes(size*1000/uint64(ms)),
		s.Stat.NFree, s.Stat.NCreated,
	)
	r.last, r.lastTime = s, s.Time
	return err
}

func (r *Reporter) Close() error {
	_, err := fmt.Fprintf(
		r.w,
		"total borrows=%d returns=%d size=%s created=%d in %s\n",
		r.last.Borrows, r.last.Returns,
		humanize.Bytes(r.last.Bytes), r.last.Stat.NCreated,
		r.lastTime.Sub(r.start).Round(time.Millisecond),
	)
	return err
}
