package workerpool

import "sync"

// Job represents one task to be run together with its position in the
// submitted batch. The index is carried through to the result so that
// callers can reassemble results in submission order.
type Job[T any] struct {
	Index int
	Task  func() (T, error)
}

// JobResult represents the result of a job.
type JobResult[T any] struct {
	Index  int
	Result T
	Err    error
}

// RunBatch executes the given tasks over at most maxWorkers concurrent
// workers and returns one result per task, ordered by task index.
func RunBatch[T any](maxWorkers int, tasks []func() (T, error)) []JobResult[T] {
	if maxWorkers > len(tasks) {
		maxWorkers = len(tasks)
	}
	if maxWorkers <= 0 {
		return nil
	}

	results := make([]JobResult[T], len(tasks))

	jobs := make(chan Job[T], len(tasks))
	for i, task := range tasks {
		jobs <- Job[T]{Index: i, Task: task}
	}
	close(jobs)

	var wg sync.WaitGroup
	for i := 0; i < maxWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				result, err := job.Task()
				results[job.Index] = JobResult[T]{Index: job.Index, Result: result, Err: err}
			}
		}()
	}
	wg.Wait()

	return results
}
