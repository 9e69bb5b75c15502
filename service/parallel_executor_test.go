package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/kobzevvv/rulescan/domain"
	"github.com/kobzevvv/rulescan/internal/config"
)

type fakeTask struct {
	name    string
	enabled bool
	run     func(ctx context.Context) (interface{}, error)
}

func (t *fakeTask) Name() string    { return t.name }
func (t *fakeTask) IsEnabled() bool { return t.enabled }
func (t *fakeTask) Execute(ctx context.Context) (interface{}, error) {
	return t.run(ctx)
}

func TestParallelExecutor_RunsAllTasks(t *testing.T) {
	executor := NewParallelExecutor()

	var count int64
	tasks := make([]domain.ExecutableTask, 10)
	for i := range tasks {
		tasks[i] = &fakeTask{
			name:    fmt.Sprintf("task-%d", i),
			enabled: true,
			run: func(ctx context.Context) (interface{}, error) {
				atomic.AddInt64(&count, 1)
				return nil, nil
			},
		}
	}

	if err := executor.Execute(context.Background(), tasks); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if count != 10 {
		t.Errorf("Expected 10 executions, got %d", count)
	}
}

func TestParallelExecutor_SkipsDisabledTasks(t *testing.T) {
	executor := NewParallelExecutor()

	ran := false
	tasks := []domain.ExecutableTask{
		&fakeTask{name: "off", enabled: false, run: func(ctx context.Context) (interface{}, error) {
			ran = true
			return nil, nil
		}},
	}

	if err := executor.Execute(context.Background(), tasks); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if ran {
		t.Error("Disabled task must not run")
	}
}

func TestParallelExecutor_AggregatesFailuresAndContinues(t *testing.T) {
	executor := NewParallelExecutor()

	var succeeded int64
	tasks := []domain.ExecutableTask{
		&fakeTask{name: "bad-1", enabled: true, run: func(ctx context.Context) (interface{}, error) {
			return nil, errors.New("boom")
		}},
		&fakeTask{name: "good", enabled: true, run: func(ctx context.Context) (interface{}, error) {
			atomic.AddInt64(&succeeded, 1)
			return nil, nil
		}},
		&fakeTask{name: "bad-2", enabled: true, run: func(ctx context.Context) (interface{}, error) {
			return nil, errors.New("bang")
		}},
	}

	err := executor.Execute(context.Background(), tasks)
	if err == nil {
		t.Fatal("Expected aggregated error")
	}

	var agg *AggregatedError
	if !errors.As(err, &agg) {
		t.Fatalf("Expected AggregatedError, got %T", err)
	}
	if len(agg.Errors) != 2 {
		t.Errorf("Expected 2 task errors, got %d", len(agg.Errors))
	}
	if succeeded != 1 {
		t.Error("One failing task must not stop the others")
	}
}

func TestParallelExecutor_FromConfig(t *testing.T) {
	executor := NewParallelExecutorFromConfig(&config.PerformanceConfig{
		MaxGoroutines:  2,
		TimeoutSeconds: 30,
	})

	if executor.maxConcurrency != 2 {
		t.Errorf("Expected concurrency 2, got %d", executor.maxConcurrency)
	}
}

func TestTaskError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	te := TaskError{TaskName: "t", Err: inner}

	if !errors.Is(te, inner) {
		t.Error("TaskError should unwrap to the inner error")
	}
}
