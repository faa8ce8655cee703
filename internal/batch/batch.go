// Package batch runs the engine over many documents at once: a bounded
// fan-out/fan-in runner for one-shot batches and a long-lived worker queue
// for streamed documents. Failures are isolated per document; one garbled
// upload never blocks or corrupts the rest of the batch.
package batch

import (
	"context"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/invoice-trust/constants"
	"github.com/joseph-ayodele/invoice-trust/internal/common"
	"github.com/joseph-ayodele/invoice-trust/internal/engine"
)

// Document is one raw extraction payload submitted for processing. ID is
// minted by the caller or by Run when left as uuid.Nil.
type Document struct {
	ID      uuid.UUID
	Payload []byte
}

// DocumentResult pairs a document with its outcome. Exactly one of Result
// and Err is set: Err carries the structurally-unusable-input class, standing
// in as the "could not extract" result for that one document.
type DocumentResult struct {
	ID     uuid.UUID      `json:"document_id"`
	Result *engine.Result `json:"result,omitempty"`
	Err    error          `json:"-"`
	Error  string         `json:"error,omitempty"`
}

// Summary aggregates a finished batch.
type Summary struct {
	Submitted         int                            `json:"submitted"`
	Processed         int                            `json:"processed"`
	Failed            int                            `json:"failed"`
	StatusCounts      map[constants.ReviewStatus]int `json:"status_counts"`
	AverageConfidence float64                        `json:"average_confidence"`
}

// Runner fans a batch out over a bounded worker set and joins the results.
type Runner struct {
	logger  *slog.Logger
	proc    *engine.Processor
	workers int
}

func NewRunner(logger *slog.Logger, proc *engine.Processor, cfg common.BatchConfig) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	return &Runner{logger: logger, proc: proc, workers: workers}
}

// Run processes every document and returns per-document results in input
// order plus a batch summary. A document that fails the structural gate
// yields a failed DocumentResult; it never aborts its siblings. The group
// context only trips when the caller cancels.
func (r *Runner) Run(ctx context.Context, docs []Document) ([]DocumentResult, Summary) {
	results := make([]DocumentResult, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := range docs {
		g.Go(func() error {
			doc := docs[i]
			id := doc.ID
			if id == uuid.Nil {
				id = uuid.New()
			}

			if err := gctx.Err(); err != nil {
				results[i] = DocumentResult{ID: id, Err: err, Error: err.Error()}
				return nil
			}

			res, err := r.proc.Process(gctx, doc.Payload)
			if err != nil {
				r.logger.Warn("batch.document.failed", "document_id", id, "err", err)
				results[i] = DocumentResult{ID: id, Err: err, Error: err.Error()}
				return nil
			}
			results[i] = DocumentResult{ID: id, Result: res}
			return nil
		})
	}

	// Workers never return errors; Wait is a pure join barrier.
	_ = g.Wait()

	sum := Summarize(results)
	r.logger.Info("batch.completed",
		"trace_id", common.TraceIDFromContext(ctx),
		"submitted", sum.Submitted,
		"processed", sum.Processed,
		"failed", sum.Failed,
		"average_confidence", sum.AverageConfidence,
	)
	return results, sum
}

// Summarize aggregates per-document results: counts by review status and the
// average overall confidence across successfully processed documents.
func Summarize(results []DocumentResult) Summary {
	sum := Summary{
		Submitted:    len(results),
		StatusCounts: make(map[constants.ReviewStatus]int),
	}

	total := 0.0
	for _, dr := range results {
		if dr.Err != nil || dr.Result == nil {
			sum.Failed++
			continue
		}
		sum.Processed++
		sum.StatusCounts[dr.Result.ReviewStatus]++
		total += dr.Result.Confidence.Overall
	}

	if sum.Processed > 0 {
		sum.AverageConfidence = math.Round(total/float64(sum.Processed)*100) / 100
	}
	return sum
}
