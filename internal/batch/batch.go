package batch

import (
	"context"
	"sort"
	"sync"

	"github.com/mgpai22/tgkit/internal/logging"
	"github.com/mgpai22/tgkit/internal/textgrid"
)

// Status identifies the input file behind a result.
type Status struct {
	Index int
	Path  string
	Err   error
}

func (s Status) Failure() error { return s.Err }

// parsed file
type Result struct {
	Status
	TextGrid *textgrid.TextGrid
}

// file in columnar form
type VectorsResult struct {
	Status
	Vectors textgrid.Vectors
}

// file in nested form
type DataResult struct {
	Status
	Data textgrid.Data
}

// Table is the combined columnar form of many files; FileID holds each row's
// position in the input list.
type Table struct {
	textgrid.Vectors
	FileID []uint32 `json:"file_id"`
}

// Runner reads many TextGrid files in parallel with one validation policy.
type Runner struct {
	Strict      bool
	FileType    textgrid.FileType
	Concurrency int
	Logger      *logging.Logger
}

// Read parses every path independently. Results are in input order and a
// failing file never stops the others.
func (r *Runner) Read(ctx context.Context, paths []string) []Result {
	if len(paths) == 0 {
		return []Result{}
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	concurrency = min(concurrency, len(paths))
	logger := r.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	workChan := make(chan Status, len(paths))
	resultChan := make(chan Result, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Go(func() {
			for job := range workChan {
				resultChan <- r.readOne(ctx, logger, job)
			}
		})
	}

	for i, path := range paths {
		workChan <- Status{Index: i, Path: path}
	}
	close(workChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]Result, 0, len(paths))
	for result := range resultChan {
		results = append(results, result)
	}

	// sort by index to maintain order
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})

	return results
}

func (r *Runner) readOne(ctx context.Context, logger *logging.Logger, job Status) Result {
	if err := ctx.Err(); err != nil {
		job.Err = err
		return Result{Status: job}
	}

	tg, err := textgrid.ReadFile(job.Path, r.Strict, r.FileType)
	if err != nil {
		logger.Warnw("Failed to read TextGrid", "file", job.Path, "error", err)
		job.Err = err
		return Result{Status: job}
	}

	logger.Debugw("Read TextGrid",
		"file", job.Path,
		"tiers", len(tg.Tiers),
		"entries", tg.Len(),
	)
	return Result{Status: job, TextGrid: tg}
}

// Vectors reads every path and converts each to columns.
func (r *Runner) Vectors(ctx context.Context, paths []string) []VectorsResult {
	read := r.Read(ctx, paths)
	out := make([]VectorsResult, len(read))
	for i, res := range read {
		out[i].Status = res.Status
		if res.TextGrid != nil {
			out[i].Vectors = res.TextGrid.ToVectors()
		}
	}
	return out
}

// Data reads every path and converts each to the nested form.
func (r *Runner) Data(ctx context.Context, paths []string) []DataResult {
	read := r.Read(ctx, paths)
	out := make([]DataResult, len(read))
	for i, res := range read {
		out[i].Status = res.Status
		if res.TextGrid != nil {
			out[i].Data = res.TextGrid.ToData()
		}
	}
	return out
}

// Combine concatenates the rows of all successful results. Failed files
// contribute no rows but keep their index, so FileID always points back
// into the original input list.
func Combine(results []VectorsResult) Table {
	n := 0
	for _, res := range results {
		if res.Err == nil {
			n += res.Vectors.Len()
		}
	}

	t := Table{
		Vectors: textgrid.Vectors{
			Tmins:      make([]float64, 0, n),
			Tmaxs:      make([]float64, 0, n),
			Labels:     make([]string, 0, n),
			TierNames:  make([]string, 0, n),
			IsInterval: make([]bool, 0, n),
		},
		FileID: make([]uint32, 0, n),
	}
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		v := res.Vectors
		t.Tmins = append(t.Tmins, v.Tmins...)
		t.Tmaxs = append(t.Tmaxs, v.Tmaxs...)
		t.Labels = append(t.Labels, v.Labels...)
		t.TierNames = append(t.TierNames, v.TierNames...)
		t.IsInterval = append(t.IsInterval, v.IsInterval...)
		for range v.Len() {
			t.FileID = append(t.FileID, uint32(res.Index))
		}
	}
	return t
}

// FirstError returns the error of the earliest failed result, if any.
func FirstError[T interface{ Failure() error }](results []T) error {
	for _, res := range results {
		if err := res.Failure(); err != nil {
			return err
		}
	}
	return nil
}

// Failures returns every per-file error in input order.
func Failures[T interface{ Failure() error }](results []T) []error {
	var errs []error
	for _, res := range results {
		if err := res.Failure(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
