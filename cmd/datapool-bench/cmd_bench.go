package main

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ozontech/datapool"
	"github.com/ozontech/datapool/factories"
	"github.com/ozontech/datapool/report"
	jsonlReporter "github.com/ozontech/datapool/report/jsonl"
	simpleReporter "github.com/ozontech/datapool/report/simple"
)

type BenchCommand struct {
	Workers  int           `default:"4" help:"Concurrent workers."`
	Duration time.Duration `default:"10s" help:"Run duration (10s, 2h...)."`
	DataSize int           `default:"65536" help:"Session data size in bytes."`
	Reserve  uint32        `help:"Pre-create this many handles before the run."`
	Hold     time.Duration `help:"Hold time between borrow and return."`
	Jsonl    string        `help:"JSON-lines report file." type:"path"`

	Verbose bool `help:"Verbose output"`
}

func (c *BenchCommand) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithTimeout(ctx, c.Duration)
	defer cancel()

	log := zap.NewNop()
	if c.Verbose {
		log = zap.Must(zap.NewDevelopment())
	}

	factory := factories.Bytes(c.DataSize)
	if c.Verbose {
		factory = factories.Logged(factory, log)
	}
	pool := datapool.New(factory)
	defer pool.Close()

	if c.Reserve > 0 {
		pool.Reserve(c.Reserve)
		log.Info("bank reserved", zap.Uint32("nfree", pool.Stat().NFree))
	}

	var reporter report.Reporter = simpleReporter.New(os.Stdout)
	if c.Jsonl != "" {
		f, err := os.Create(c.Jsonl)
		if err != nil {
			return fmt.Errorf("creating jsonl file(%s): %w", c.Jsonl, err)
		}
		defer func() { err = multierr.Append(err, f.Close()) }()
		reporter = report.NewMulti(reporter, jsonlReporter.New(f))
	}
	defer func() { err = multierr.Append(err, reporter.Close()) }()

	var borrows, returns atomic.Uint64

	snapshot := func(now time.Time) report.Snapshot {
		b := borrows.Load()
		return report.Snapshot{
			Time:    now,
			Borrows: b,
			Returns: returns.Load(),
			Bytes:   b * uint64(c.DataSize),
			Stat:    pool.Stat(),
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < c.Workers; i++ {
		g.Go(func() error {
			for ctx.Err() == nil {
				h := pool.Borrow()
				if h == nil {
					return fmt.Errorf("factory produced no handle")
				}
				borrows.Add(1)
				if c.Hold > 0 {
					time.Sleep(c.Hold)
				}
				pool.Return(h)
				returns.Add(1)
			}
			return nil
		})
	}
	g.Go(func() error {
		t := time.NewTicker(time.Second)
		defer t.Stop()
		for {
			select {
			case now := <-t.C:
				if err := reporter.Report(snapshot(now)); err != nil {
					return fmt.Errorf("report: %w", err)
				}
			case <-ctx.Done():
				return nil
			}
		}
	})

	err = g.Wait()
	if err != nil {
		return err
	}
	return reporter.Report(snapshot(time.Now()))
}
