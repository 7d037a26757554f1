package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"structured-sft/internal/diagnostic"
	"structured-sft/internal/record"
	"structured-sft/internal/validate"
)

const (
	DefaultWorkers     = 1
	DefaultMaxAttempts = 1
)

// Job requests Count records of one subcategory.
type Job struct {
	Subcategory string
	Count       int
}

type RunOptions struct {
	Seed    uint64
	Workers int
	// MaxAttempts is the number of seeds tried per requested record before
	// the slot is given up.
	MaxAttempts int
}

// SubcategoryStats counts the outcome of one job.
type SubcategoryStats struct {
	Subcategory string
	Requested   int
	Accepted    int
	Rejected    int
	SoftPassed  int
}

type Report struct {
	Records     []record.Record
	Stats       []SubcategoryStats
	Diagnostics diagnostic.Diagnostics
}

type task struct {
	job   int
	index int
}

type slot struct {
	sample   Sample
	ok       bool
	rejected int
}

// Run generates every job. Records come out in job order and, within a job,
// in index order, whatever the number of workers.
func (g *Generator) Run(ctx context.Context, jobs []Job, opts RunOptions) (*Report, error) {
	if err := g.checkJobs(jobs); err != nil {
		return nil, err
	}

	workers := max(opts.Workers, DefaultWorkers)
	attempts := max(opts.MaxAttempts, DefaultMaxAttempts)

	var tasks []task

	for j, job := range jobs {
		for i := range job.Count {
			tasks = append(tasks, task{job: j, index: i})
		}
	}

	g.logger.Info("generation started",
		zap.String("pack", g.pack.Name),
		zap.Uint64("seed", opts.Seed),
		zap.Int("requests", len(tasks)),
		zap.Int("workers", workers),
		zap.Bool("strict", g.strict))

	slots := make([]slot, len(tasks))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for n, t := range tasks {
		if egCtx.Err() != nil {
			break
		}

		eg.Go(func() error {
			s, err := g.runTask(egCtx, jobs[t.job].Subcategory, t.index, opts.Seed, attempts)
			slots[n] = s

			return err
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("generate %s: %w", g.pack.Name, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("generate %s: %w", g.pack.Name, err)
	}

	report := g.collect(jobs, tasks, slots)

	g.logger.Info("generation finished",
		zap.String("pack", g.pack.Name),
		zap.Int("records", len(report.Records)),
		zap.Int("warnings", len(report.Diagnostics.Warnings)))

	return report, nil
}

// runTask tries up to attempts seeds for one requested record.
func (g *Generator) runTask(ctx context.Context, subcategory string, index int, runSeed uint64, attempts int) (slot, error) {
	var s slot

	for attempt := range attempts {
		if err := ctx.Err(); err != nil {
			return s, err
		}

		req, err := g.NewRequest(subcategory, DeriveSeed(runSeed, g.pack.Name, subcategory, index, attempt))
		if err != nil {
			return s, err
		}

		sample, err := g.Generate(req)
		if errors.Is(err, ErrRejected) {
			s.rejected++
			g.logger.Debug("candidate rejected",
				zap.String("subcategory", subcategory),
				zap.Int("index", index),
				zap.Int("attempt", attempt),
				zap.Error(err))

			continue
		}

		if err != nil {
			return s, err
		}

		s.sample, s.ok = sample, true

		return s, nil
	}

	return s, nil
}

func (g *Generator) checkJobs(jobs []Job) error {
	for _, job := range jobs {
		if _, ok := g.pack.Subcategory(job.Subcategory); !ok {
			return g.unknown(job.Subcategory)
		}

		if job.Count < 0 {
			return fmt.Errorf("subcategory %s: negative count %d", job.Subcategory, job.Count)
		}
	}

	return nil
}

func (g *Generator) collect(jobs []Job, tasks []task, slots []slot) *Report {
	report := &Report{Stats: make([]SubcategoryStats, len(jobs))}

	for _, d := range g.validators.Degraded() {
		report.Diagnostics.AddWarning(diagnostic.CodeDegradedValidator, d.String(), "", "")
	}

	for j, job := range jobs {
		report.Stats[j] = SubcategoryStats{Subcategory: job.Subcategory, Requested: job.Count}
	}

	for n, t := range tasks {
		st := &report.Stats[t.job]
		st.Rejected += slots[n].rejected

		if !slots[n].ok {
			continue
		}

		st.Accepted++
		if slots[n].sample.Verdict == validate.VerdictSoftPass {
			st.SoftPassed++
		}

		report.Records = append(report.Records, slots[n].sample.Record)
	}

	for _, st := range report.Stats {
		if st.Rejected > 0 {
			report.Diagnostics.AddInfo(diagnostic.CodeRejected,
				fmt.Sprintf("%d candidates rejected", st.Rejected), st.Subcategory, "")
		}

		if st.Accepted < st.Requested {
			report.Diagnostics.AddWarning(diagnostic.CodeShortfall,
				fmt.Sprintf("%d of %d requested records generated", st.Accepted, st.Requested), st.Subcategory, "")
		}
	}

	return report
}
