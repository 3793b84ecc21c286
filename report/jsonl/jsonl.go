// Package jsonl writes pool benchmark snapshots as JSON lines, suitable for
// offline aggregation.
package jsonl

import (
	"bufio"
	"io"
	"time"

	"github.com/mailru/easyjson/jwriter"

	"github.com/ozontech/datapool/report"
)

type Reporter struct {
	w *bufio.Writer
}

func New(w io.Writer) *Reporter {
	return &Reporter{w: bufio.NewWriter(w)}
}

func (r *Reporter) Report(s report.Snapshot) error {
	var jw jwriter.Writer
	jw.RawByte('{')
	jw.RawString(`"time":`)
	jw.String(s.Time.Format(time.RFC3339Nano))
	jw.RawString(`,"borrows":`)
	jw.Uint64(s.Borrows)
	jw.RawString(`,"returns":`)
	jw.Uint64(s.Returns)
	jw.RawString(`,"bytes":`)
	jw.Uint64(s.Bytes)
	jw.RawString(`,"nfree":`)
	jw.Uint32(s.Stat.NFree)
	jw.RawString(`,"ncreated":`)
	jw.Uint32(s.Stat.NCreated)
	jw.RawByte('}')
	jw.RawByte('\n')

	_, err := jw.DumpTo(r.w)
	return err
}

func (r *Reporter) Close() error {
	return r.w.Flush()
}
