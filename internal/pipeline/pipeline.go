// SPDX-License-Identifier: Apache-2.0

// Package pipeline orchestrates one run: records are coerced and mapped
// in parallel, then ingested into the graph by a single sequential
// stage so merge conflicts resolve deterministically in row order.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bocagrande/semmap/internal/contract"
	"github.com/bocagrande/semmap/internal/gateway"
	"github.com/bocagrande/semmap/internal/graph"
	"github.com/bocagrande/semmap/internal/mapping"
)

// Diagnostic records one skipped record and why.
type Diagnostic struct {
	Row     int    `json:"row"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Summary is the user-visible outcome of a run.
type Summary struct {
	RunID       string `json:"run_id"`
	SchemaID    string `json:"schema_id"`
	Processed   int    `json:"processed"`
	Mapped      int    `json:"mapped"`
	Skipped     int    `json:"skipped"`
	Conflicts   int    `json:"conflicts"`
	Individuals int    `json:"individuals"`
	Cancelled   bool   `json:"cancelled,omitempty"`
}

// Result carries the assembled graph, the per-record diagnostics and
// the run summary. On cancellation it holds the partial graph built so
// far.
type Result struct {
	Graph       *graph.Graph
	Diagnostics []Diagnostic
	Summary     Summary
}

// Runner maps record batches for one loaded schema.
type Runner struct {
	schema  *contract.Schema
	mapper  *mapping.Mapper
	workers int
	logger  *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers bounds the mapping worker pool.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithLogger sets the structured logger for the run.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner builds a Runner. Workers default to GOMAXPROCS.
func NewRunner(schema *contract.Schema, opts ...Option) *Runner {
	r := &Runner{
		schema:  schema,
		mapper:  mapping.NewMapper(schema),
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// outcome is one record's mapping result, indexed by row.
type outcome struct {
	individual *mapping.Individual
	err        error
	submitted  bool
}

// Run maps all records and assembles the graph. Records are coerced in
// parallel with no shared mutable state; ingestion happens afterwards
// in row order so first-write-wins is deterministic. Cancelling ctx
// stops submitting further records and still returns the partial graph
// and the diagnostics collected so far.
func (r *Runner) Run(ctx context.Context, records [][]string) *Result {
	runID := uuid.NewString()
	start := time.Now()

	outcomes := make([]outcome, len(records))

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(r.workers)

	cancelled := false
	for i, cells := range records {
		if gctx.Err() != nil {
			cancelled = true
			break
		}
		i, cells := i, cells
		outcomes[i].submitted = true
		grp.Go(func() error {
			ind, err := r.mapper.MapRecord(cells, i)
			outcomes[i].individual = ind
			outcomes[i].err = err
			return nil
		})
	}
	_ = grp.Wait()

	assembler := graph.NewAssembler(r.schema)
	var diags []Diagnostic
	mapped := 0
	for i := range outcomes {
		o := &outcomes[i]
		if !o.submitted {
			continue
		}
		if o.err != nil {
			diags = append(diags, diagnose(i, o.err))
			r.logger.Warn("record skipped",
				slog.String("run_id", runID),
				slog.Int("row", i),
				slog.String("reason", o.err.Error()))
			continue
		}
		assembler.Ingest(o.individual)
		mapped++
	}

	g := assembler.Graph()
	summary := Summary{
		RunID:       runID,
		SchemaID:    r.schema.ID(),
		Processed:   processedCount(outcomes),
		Mapped:      mapped,
		Skipped:     len(diags),
		Conflicts:   len(g.Conflicts()),
		Individuals: g.Len(),
		Cancelled:   cancelled,
	}

	r.logger.Info("run complete",
		slog.String("run_id", runID),
		slog.String("schema", summary.SchemaID),
		slog.Int("processed", summary.Processed),
		slog.Int("mapped", summary.Mapped),
		slog.Int("skipped", summary.Skipped),
		slog.Int("conflicts", summary.Conflicts),
		slog.Bool("cancelled", cancelled),
		slog.Duration("elapsed", time.Since(start)))

	return &Result{Graph: g, Diagnostics: diags, Summary: summary}
}

func processedCount(outcomes []outcome) int {
	n := 0
	for i := range outcomes {
		if outcomes[i].submitted {
			n++
		}
	}
	return n
}

func diagnose(row int, err error) Diagnostic {
	var fe *mapping.FieldError
	var se *mapping.RecordShapeError
	switch {
	case errors.As(err, &fe):
		return Diagnostic{Row: row, Kind: "field_error", Message: err.Error()}
	case errors.As(err, &se):
		return Diagnostic{Row: row, Kind: "record_shape_error", Message: err.Error()}
	default:
		return Diagnostic{Row: row, Kind: "error", Message: err.Error()}
	}
}

// Validate hands the assembled graph to the external validator under
// the given timeout. The graph in res stays intact whatever happens;
// timeout and collaborator failure surface as distinct errors from a
// legitimately unsatisfiable report.
func (r *Runner) Validate(ctx context.Context, res *Result, v gateway.Validator, timeout time.Duration) (gateway.ValidationReport, error) {
	report, err := gateway.ValidateWithTimeout(ctx, v, res.Graph, timeout)
	if err != nil {
		r.logger.Warn("external validation failed",
			slog.String("run_id", res.Summary.RunID),
			slog.String("error", err.Error()))
		return gateway.ValidationReport{}, err
	}
	r.logger.Info("external validation complete",
		slog.String("run_id", res.Summary.RunID),
		slog.Bool("satisfiable", report.Satisfiable),
		slog.Bool("conforms", report.Conforms),
		slog.Int("violations", len(report.Violations)))
	return report, nil
}
