package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	md2page "github.com/alnah/go-md2page"
	"github.com/alnah/go-md2page/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// convertBatch converts files with at most workers in flight.
// Results keep the order of files; a failed file never stops the others.
func convertBatch(ctx context.Context, files []FileToConvert, params *conversionParams, workers int, env *Environment) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))
	var g errgroup.Group
	g.SetLimit(min(workers, len(files)))

	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = ConversionResult{InputPath: f.InputPath, Err: err}
				return nil
			}
			results[i] = convertFile(ctx, f, params, env)
			return nil
		})
	}
	_ = g.Wait() // workers record failures in results

	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, f FileToConvert, params *conversionParams, env *Environment) ConversionResult {
	start := env.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	result.Err = writeConversion(ctx, f, params)
	result.Duration = env.Now().Sub(start)
	return result
}

func writeConversion(ctx context.Context, f FileToConvert, params *conversionParams) error {
	content, err := fileutil.ReadFileLimited(f.InputPath, params.maxBytes)
	if err != nil {
		if errors.Is(err, fileutil.ErrInputTooLarge) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	res, err := params.converter.Convert(ctx, string(content))
	if err != nil {
		return err
	}

	out := []byte(res.HTML)
	if params.page != nil {
		opts := *params.page
		opts.Title = pageTitle(res, f.InputPath)
		if out, err = md2page.RenderPage(res, opts); err != nil {
			return err
		}
	}

	if err := ensureDir(f.OutputPath); err != nil {
		return err
	}
	// #nosec G306 -- HTML files are meant to be readable
	if err := fileutil.WriteFileAtomic(f.OutputPath, out, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	if params.meta {
		return writeMetadata(f.OutputPath, res)
	}
	return nil
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided writers.
// Returns the number of failures.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}

// batchError reports failed conversions. It unwraps to every cause so
// exit codes reflect what went wrong.
type batchError struct {
	failed int
	total  int
	errs   []error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d conversion(s) failed", e.failed, e.total)
}

func (e *batchError) Unwrap() []error {
	return e.errs
}

// batchErr returns nil when every conversion succeeded.
func batchErr(results []ConversionResult) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &batchError{failed: len(errs), total: len(results), errs: errs}
}
