package sweeper

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type WorkerPoolI interface {
	AddTask(ctx context.Context, name string, task Task) error
	Close()
}

type Task func() error

// WorkerPool runs purge tasks on a fixed set of goroutines. Submission
// blocks when all workers are busy, which naturally throttles sweep bursts.
type WorkerPool struct {
	tasks     chan namedTask
	wg        sync.WaitGroup
	closeOnce sync.Once
}

type namedTask struct {
	name string
	run  Task
}

func NewWorkerPool(size int) *WorkerPool {
	wp := &WorkerPool{tasks: make(chan namedTask)}

	wp.wg.Add(size)
	for i := 0; i < size; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.tasks {
		if err := task.run(); err != nil {
			zap.L().Error("sweep task failed",
				zap.String("task", task.name),
				zap.Error(err),
			)
		}
	}
}

func (wp *WorkerPool) AddTask(ctx context.Context, name string, task Task) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case wp.tasks <- namedTask{name: name, run: task}:
		return nil
	}
}

// Close stops accepting tasks and waits for in-flight ones to finish.
func (wp *WorkerPool) Close() {
	wp.closeOnce.Do(func() {
		close(wp.tasks)
	})
	wp.wg.Wait()
}
