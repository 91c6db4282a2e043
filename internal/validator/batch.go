package validator

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/thoreinstein/edmx/internal/errors"
	"github.com/thoreinstein/edmx/internal/logging"
	"github.com/thoreinstein/edmx/internal/report"
	"github.com/thoreinstein/edmx/pkg/fileutil"
)

// Job is one record to validate.
type Job struct {
	// Source names the record in output. Unless Data is set it is also the
	// path the record is read from.
	Source string
	Kind   Kind
	// Data holds the record when it does not come from a file, as with
	// standard input.
	Data []byte
}

// Outcome is the result of one Job. Err is set when the record could not be
// read or the validator failed; Report is then empty.
type Outcome struct {
	Source string
	Report report.Report
	Err    error
}

// Entry converts a successful outcome for the reporter.
func (o Outcome) Entry() report.Entry {
	return report.Entry{Source: o.Source, Report: o.Report}
}

// BatchOptions configures a Batch.
type BatchOptions struct {
	// Workers defaults to GOMAXPROCS.
	Workers int
	// MaxRecordSize limits each file read. Zero means fileutil.DefaultMaxRecordSize.
	MaxRecordSize int64
}

// Stats reports batch counters.
type Stats struct {
	Submitted int64
	Completed int64
	Failed    int64
	Invalid   int64
}

// Batch validates many records with a bounded set of workers.
type Batch struct {
	validator *Validator
	opts      BatchOptions
	runID     string

	submitted atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
	invalid   atomic.Int64
}

// NewBatch returns a Batch that validates with v.
func NewBatch(v *Validator, opts BatchOptions) *Batch {
	if opts.Workers < 1 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Batch{
		validator: v,
		opts:      opts,
		runID:     uuid.NewString(),
	}
}

// RunID identifies this batch in logs.
func (b *Batch) RunID() string { return b.runID }

// Run validates jobs and returns one outcome per job, in job order. When ctx
// is cancelled, jobs not yet started are returned with the context error.
func (b *Batch) Run(ctx context.Context, jobs []Job) []Outcome {
	logger := logging.FromContext(ctx).With("run_id", b.runID)
	ctx = logging.NewContext(ctx, logger)
	start := time.Now()

	outcomes := make([]Outcome, len(jobs))
	queue := make(chan int)

	workers := min(b.opts.Workers, len(jobs))
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for i := range queue {
				outcomes[i] = b.run(ctx, jobs[i])
			}
		}()
	}

	next := 0
feed:
	for ; next < len(jobs); next++ {
		select {
		case <-ctx.Done():
			break feed
		case queue <- next:
			b.submitted.Add(1)
		}
	}
	close(queue)
	wg.Wait()

	for i := next; i < len(jobs); i++ {
		outcomes[i] = Outcome{Source: jobs[i].Source, Err: ctx.Err()}
		b.failed.Add(1)
	}

	stats := b.Stats()
	logger.Debug("batch finished",
		"jobs", len(jobs),
		"completed", stats.Completed,
		"failed", stats.Failed,
		"invalid", stats.Invalid,
		"duration", time.Since(start),
	)
	return outcomes
}

// Stats returns a snapshot of the batch counters.
func (b *Batch) Stats() Stats {
	return Stats{
		Submitted: b.submitted.Load(),
		Completed: b.completed.Load(),
		Failed:    b.failed.Load(),
		Invalid:   b.invalid.Load(),
	}
}

func (b *Batch) run(ctx context.Context, job Job) Outcome {
	out := Outcome{Source: job.Source}
	if err := ctx.Err(); err != nil {
		out.Err = err
		b.failed.Add(1)
		return out
	}

	data := job.Data
	if data == nil {
		var err error
		data, err = fileutil.ReadFileWithLimit(job.Source, b.opts.MaxRecordSize)
		if err != nil {
			out.Err = err
			b.failed.Add(1)
			return out
		}
	}

	r, err := b.validator.ValidateRecord(ctx, string(data), job.Kind)
	if err != nil {
		out.Err = errors.Wrapf(err, "validating %s", job.Source)
		b.failed.Add(1)
		return out
	}

	out.Report = r
	b.completed.Add(1)
	if !r.Passed() {
		b.invalid.Add(1)
	}
	return out
}
