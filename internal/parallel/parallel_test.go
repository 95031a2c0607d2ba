package parallel

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestRun_Success(t *testing.T) {
	tasks := []Task{
		{Name: "frame-0", Fn: func(context.Context) (string, error) { return "out/frame-0.svg", nil }},
		{Name: "frame-1", Fn: func(context.Context) (string, error) { return "out/frame-1.svg", nil }},
		{Name: "frame-2", Fn: func(context.Context) (string, error) { return "out/frame-2.svg", nil }},
	}

	var buf bytes.Buffer
	results := Run(context.Background(), tasks, 4, &buf)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if !r.OK {
			t.Errorf("task %s should be OK", r.Name)
		}
		if want := fmt.Sprintf("out/frame-%d.svg", i); r.Output != want {
			t.Errorf("expected output %q, got %q", want, r.Output)
		}
	}
	if n := strings.Count(buf.String(), "\n"); n != 3 {
		t.Errorf("expected 3 progress lines, got %d", n)
	}
	if len(Failed(results)) != 0 {
		t.Error("expected no failures")
	}
}

func TestRun_WithErrors(t *testing.T) {
	tasks := []Task{
		{Name: "ok-task", Fn: func(context.Context) (string, error) { return "", nil }},
		{Name: "fail-task", Fn: func(context.Context) (string, error) { return "partial", fmt.Errorf("simulated failure") }},
	}

	results := Run(context.Background(), tasks, 4, nil)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	// Results should be in order
	if !results[0].OK {
		t.Error("first task should be OK")
	}
	if results[1].OK {
		t.Error("second task should have failed")
	}
	if results[1].Output != "partial" {
		t.Errorf("expected output %q, got %q", "partial", results[1].Output)
	}
	failed := Failed(results)
	if len(failed) != 1 || failed[0].Name != "fail-task" {
		t.Errorf("unexpected failures %+v", failed)
	}
}

func TestRun_Concurrency(t *testing.T) {
	var maxConcurrent int64
	var current int64

	tasks := make([]Task, 10)
	for i := range tasks {
		tasks[i] = Task{
			Name: fmt.Sprintf("task-%d", i),
			Fn: func(context.Context) (string, error) {
				c := atomic.AddInt64(&current, 1)
				// Track max concurrent
				for {
					old := atomic.LoadInt64(&maxConcurrent)
					if c <= old || atomic.CompareAndSwapInt64(&maxConcurrent, old, c) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				atomic.AddInt64(&current, -1)
				return "", nil
			},
		}
	}

	results := Run(context.Background(), tasks, 2, nil) // Limit to 2 concurrent

	if len(results) != 10 {
		t.Fatalf("expected 10 results, got %d", len(results))
	}
	if maxConcurrent > 2 {
		t.Errorf("max concurrent should be <= 2, got %d", maxConcurrent)
	}
}

func TestRun_DefaultConcurrency(t *testing.T) {
	tasks := []Task{
		{Name: "test", Fn: func(context.Context) (string, error) { return "", nil }},
	}

	// Should not panic with 0 concurrency (defaults to 4)
	results := Run(context.Background(), tasks, 0, nil)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran int64
	tasks := []Task{
		{Name: "a", Fn: func(context.Context) (string, error) { atomic.AddInt64(&ran, 1); return "", nil }},
		{Name: "b", Fn: func(context.Context) (string, error) { atomic.AddInt64(&ran, 1); return "", nil }},
	}
	results := Run(ctx, tasks, 1, nil)
	if ran != 0 {
		t.Errorf("expected no task to run, ran %d", ran)
	}
	for _, r := range results {
		if r.OK || r.Err != context.Canceled {
			t.Errorf("task %s: expected context.Canceled, got %v", r.Name, r.Err)
		}
	}
}

func TestRun_TimingTracked(t *testing.T) {
	tasks := []Task{
		{Name: "slow", Fn: func(context.Context) (string, error) {
			time.Sleep(50 * time.Millisecond)
			return "", nil
		}},
	}

	results := Run(context.Background(), tasks, 1, nil)
	if results[0].Elapsed < 50*time.Millisecond {
		t.Errorf("expected elapsed >= 50ms, got %v", results[0].Elapsed)
	}
}
