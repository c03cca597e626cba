package importer

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/ashby/coursebook/internal/importer/source"
	"github.com/ashby/coursebook/internal/pkg/apperrors"
)

// sliceReader serves rows from a slice, matching the reader contract of one
// row per Next call and io.EOF at exhaustion.
type sliceReader struct {
	rows []*source.Row
	pos  int
}

func (r *sliceReader) Count(ctx context.Context) (int, error) {
	return len(r.rows), nil
}

func (r *sliceReader) Next(ctx context.Context) (*source.Row, error) {
	if r.pos >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.pos]
	r.pos++
	return row, nil
}

func (r *sliceReader) Close() error { return nil }

func TestRunnerBatchesAndProgress(t *testing.T) {
	rows := make([]*source.Row, 5)
	for i := range rows {
		row := testRow()
		row.CRN = "1000" + string(rune('0'+i))
		rows[i] = row
	}

	store := newFakeStore()
	var progress [][2]int
	runner := NewRunner(
		&sliceReader{rows: rows},
		NewReconciler(store),
		store,
		2,
		func(processed, total int) { progress = append(progress, [2]int{processed, total}) },
	)

	stats, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.RowsRead != 5 || stats.SectionsWritten != 5 || stats.RowsSkipped != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if store.flushes != 3 {
		t.Errorf("flushes = %d, want 3 (two full batches plus the tail)", store.flushes)
	}

	want := [][2]int{{2, 5}, {4, 5}, {5, 5}}
	if len(progress) != len(want) {
		t.Fatalf("progress calls = %v, want %v", progress, want)
	}
	for i, p := range want {
		if progress[i] != p {
			t.Errorf("progress[%d] = %v, want %v", i, progress[i], p)
		}
	}
}

func TestRunnerCountsSkipsAndDuplicates(t *testing.T) {
	sentinel := testRow()
	sentinel.Term = "..."

	dupA := testRow()
	dupB := testRow()
	other := testRow()
	other.CRN = "67890"

	store := newFakeStore()
	runner := NewRunner(
		&sliceReader{rows: []*source.Row{sentinel, dupA, dupB, other}},
		NewReconciler(store),
		store,
		0,
		nil,
	)

	stats, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.RowsRead != 4 {
		t.Errorf("RowsRead = %d, want 4", stats.RowsRead)
	}
	if stats.RowsSkipped != 1 {
		t.Errorf("RowsSkipped = %d, want 1", stats.RowsSkipped)
	}
	if stats.SectionsWritten != 3 {
		t.Errorf("SectionsWritten = %d, want 3", stats.SectionsWritten)
	}
	if stats.DuplicateCRNs != 1 {
		t.Errorf("DuplicateCRNs = %d, want 1", stats.DuplicateCRNs)
	}
	if len(store.sections) != 2 {
		t.Errorf("store holds %d sections, want 2 distinct", len(store.sections))
	}
}

func TestRunnerStopsOnFlushError(t *testing.T) {
	store := newFakeStore()
	store.flushErr = errors.New("connection reset")

	runner := NewRunner(
		&sliceReader{rows: []*source.Row{testRow()}},
		NewReconciler(store),
		store,
		1,
		nil,
	)

	_, err := runner.Run(context.Background())
	if err == nil {
		t.Fatal("expected flush error to abort the run")
	}
	if !errors.Is(err, apperrors.ErrStore) {
		t.Errorf("error class = %s, want store", apperrors.Classify(err))
	}
}

func TestRunnerExactBatchMultiple(t *testing.T) {
	rows := make([]*source.Row, 4)
	for i := range rows {
		row := testRow()
		row.CRN = "2000" + string(rune('0'+i))
		rows[i] = row
	}

	store := newFakeStore()
	var progress [][2]int
	runner := NewRunner(
		&sliceReader{rows: rows},
		NewReconciler(store),
		store,
		2,
		func(processed, total int) { progress = append(progress, [2]int{processed, total}) },
	)

	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// The last row landed on a batch boundary, so the tail flush is a
	// no-op and the final progress line is not repeated.
	if store.flushes != 2 {
		t.Errorf("flushes = %d, want 2", store.flushes)
	}
	want := [][2]int{{2, 4}, {4, 4}}
	if len(progress) != len(want) {
		t.Fatalf("progress calls = %v, want %v", progress, want)
	}
	for i, p := range want {
		if progress[i] != p {
			t.Errorf("progress[%d] = %v, want %v", i, progress[i], p)
		}
	}
}

func TestRunnerEmptyInput(t *testing.T) {
	store := newFakeStore()
	runner := NewRunner(&sliceReader{}, NewReconciler(store), store, 2, nil)

	stats, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.RowsRead != 0 {
		t.Errorf("RowsRead = %d, want 0", stats.RowsRead)
	}
	if store.flushes != 0 {
		t.Errorf("flushes = %d, want 0 for empty input", store.flushes)
	}
}

func TestCommitterBatchSizeFallback(t *testing.T) {
	c := NewCommitter(newFakeStore(), 0, 10, nil)
	if c.batchSize != DefaultBatchSize {
		t.Errorf("batchSize = %d, want %d", c.batchSize, DefaultBatchSize)
	}
}
