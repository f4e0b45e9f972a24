package async

import (
	"context"
	"errors"
	"fmt"
)

// Task represents an asynchronous operation with a name and function.
type Task struct {
	Name string
	Func func(context.Context) error
}

// RunParallel executes tasks concurrently and waits for all of them. Every
// failure is wrapped with its task name and joined. With failFast the
// context passed to the remaining tasks is cancelled on the first failure.
//
// Example:
//
//	tasks := []Task{
//	    {Name: "images", Func: loadImages},
//	    {Name: "sizes", Func: loadSizes},
//	}
//	if err := RunParallel(ctx, tasks, true); err != nil {
//	    return err
//	}
func RunParallel(ctx context.Context, tasks []Task, failFast bool) error {
	if len(tasks) == 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		name string
		err  error
	}
	results := make(chan result, len(tasks))

	for _, task := range tasks {
		go func() {
			results <- result{name: task.Name, err: task.Func(ctx)}
		}()
	}

	var errs []error
	for range len(tasks) {
		res := <-results
		if res.err == nil {
			continue
		}
		errs = append(errs, fmt.Errorf("failed to load %s: %w", res.name, res.err))
		if failFast {
			cancel()
		}
	}
	return errors.Join(errs...)
}
