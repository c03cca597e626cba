package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ashby/coursebook/internal/importer/source"
	"github.com/ashby/coursebook/internal/pkg/apperrors"
)

// DefaultBatchSize is the number of rows reconciled between store flushes.
const DefaultBatchSize = 100

// ProgressFunc receives coarse progress after each committed batch.
type ProgressFunc func(processed, total int)

// Committer flushes accumulated store mutations every batchSize rows and
// once at end-of-stream, reporting progress to an optional sink. A flush
// failure is fatal for the run; batches already committed stay committed.
type Committer struct {
	store     EntityStore
	batchSize int
	progress  ProgressFunc
	total     int
	processed int
	flushed   int // processed count at the last flush
}

// NewCommitter returns a committer flushing every batchSize rows. A zero or
// negative batchSize falls back to DefaultBatchSize.
func NewCommitter(store EntityStore, batchSize int, total int, progress ProgressFunc) *Committer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Committer{
		store:     store,
		batchSize: batchSize,
		progress:  progress,
		total:     total,
	}
}

// RowDone records one processed row and flushes when the batch boundary is
// reached.
func (c *Committer) RowDone(ctx context.Context) error {
	c.processed++
	if c.processed%c.batchSize != 0 {
		return nil
	}

	return c.flush(ctx)
}

// Finish flushes whatever the last partial batch accumulated. It is a no-op
// when the last row already landed on a batch boundary.
func (c *Committer) Finish(ctx context.Context) error {
	if c.processed == c.flushed {
		return nil
	}
	return c.flush(ctx)
}

func (c *Committer) flush(ctx context.Context) error {
	if err := c.store.Flush(ctx); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStore, err)
	}
	c.flushed = c.processed

	if c.progress != nil {
		c.progress(c.processed, c.total)
	}

	return nil
}

// Stats summarizes one import run.
type Stats struct {
	RowsRead        int
	RowsSkipped     int
	SectionsWritten int
	DuplicateCRNs   int
}

// Runner drives one import run: read a row, reconcile it, commit in batches.
// Rows are processed strictly one at a time.
type Runner struct {
	reader     source.Reader
	reconciler *Reconciler
	store      EntityStore
	batchSize  int
	progress   ProgressFunc
}

// NewRunner assembles a run over the given reader and store.
func NewRunner(reader source.Reader, reconciler *Reconciler, store EntityStore, batchSize int, progress ProgressFunc) *Runner {
	return &Runner{
		reader:     reader,
		reconciler: reconciler,
		store:      store,
		batchSize:  batchSize,
		progress:   progress,
	}
}

// Run consumes the reader to exhaustion. The first row or store error aborts
// the run; previously committed batches remain in place and a re-run over
// the same input converges thanks to natural-key upserts.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	total, err := r.reader.Count(ctx)
	if err != nil {
		return stats, err
	}

	committer := NewCommitter(r.store, r.batchSize, total, r.progress)
	crnRows := make(map[string]int)

	for {
		row, err := r.reader.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, err
		}
		stats.RowsRead++

		section, err := r.reconciler.Reconcile(ctx, row)
		if err != nil {
			return stats, err
		}

		if section == nil {
			stats.RowsSkipped++
		} else {
			stats.SectionsWritten++
			crnRows[section.CRN]++
		}

		if err := committer.RowDone(ctx); err != nil {
			return stats, err
		}
	}

	if err := committer.Finish(ctx); err != nil {
		return stats, err
	}

	for _, n := range crnRows {
		if n > 1 {
			stats.DuplicateCRNs++
		}
	}

	return stats, nil
}
