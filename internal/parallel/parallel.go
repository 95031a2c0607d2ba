// Package parallel runs independent jobs, such as frame exports, with a
// concurrency limit.
package parallel

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/msalah0e/helix/internal/ui"
)

// Result holds the outcome of a parallel task.
type Result struct {
	Name    string
	OK      bool
	Err     error
	Output  string
	Elapsed time.Duration
}

// Task is a function that runs in parallel. Output is a short summary,
// typically the path written.
type Task struct {
	Name string
	Fn   func(ctx context.Context) (string, error)
}

// Run executes tasks with the given concurrency limit and returns results
// in submission order. Progress lines go to progress when it is non-nil.
// Tasks not yet started when ctx is cancelled fail with ctx.Err().
func Run(ctx context.Context, tasks []Task, concurrency int, progress io.Writer) []Result {
	if concurrency < 1 {
		concurrency = 4
	}

	results := make([]Result, len(tasks))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, task := range tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Name: task.Name, Err: err}
				return nil
			}

			start := time.Now()
			output, err := task.Fn(gctx)
			elapsed := time.Since(start)

			mu.Lock()
			defer mu.Unlock()
			results[i] = Result{Name: task.Name, OK: err == nil, Err: err, Output: output, Elapsed: elapsed}
			if progress == nil {
				return nil
			}
			if err != nil {
				fmt.Fprintf(progress, "  %s %s %s\n", ui.StatusIcon(false), task.Name, ui.Bad.Sprintf("(%v)", err))
			} else {
				fmt.Fprintf(progress, "  %s %s %s\n", ui.StatusIcon(true), output, ui.Subtle.Sprintf("%.0fms", float64(elapsed.Microseconds())/1000))
			}
			return nil // never fail the group; collect results instead
		})
	}

	_ = g.Wait()
	return results
}

// Failed returns the results that did not succeed.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.OK {
			out = append(out, r)
		}
	}
	return out
}
