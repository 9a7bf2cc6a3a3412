package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"orderflow/pkg/logger"
)

// Task определяет интерфейс для фоновых задач, которые могут выполняться периодически.
type Task interface {
	// TTL возвращает интервал между выполнениями задачи.
	TTL() time.Duration

	// Do выполняет логику задачи.
	Do(context.Context) error

	// Info возвращает читаемое описание задачи для логгирования и отладки.
	Info() string
}

type workerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

// Worker управляет выполнением набора фоновых задач.
type Worker struct {
	log   workerLogger
	tasks []Task
	wg    sync.WaitGroup
}

// New прогревает задачи и запускает их периодическое выполнение.
//
//  1. Каждая задача выполняется один раз синхронно. Ошибка или паника
//     любой из них возвращается из New, воркер не создаётся.
//  2. После прогрева задачи выполняются раз в TTL, пока не отменён ctx.
//     Ошибки и паники периодических запусков только логируются.
func New(ctx context.Context, log workerLogger, tasks []Task) (*Worker, error) {
	worker := &Worker{
		log:   log,
		tasks: tasks,
	}
	if len(tasks) == 0 {
		return worker, nil
	}

	initGroup, initCtx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		initGroup.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("init panic in %s: %v", task.Info(), r)
					log.With(
						logger.NewField("task", task.Info()),
						logger.NewField("recover", r),
						logger.NewField("stack", string(debug.Stack())),
					).Error("task panic during init")
				}
			}()
			log.With(logger.NewField("task", task.Info())).Info("initializing task")
			return task.Do(initCtx)
		})
	}

	if err := initGroup.Wait(); err != nil {
		return nil, fmt.Errorf("failed to initialize tasks: %w", err)
	}

	for _, task := range tasks {
		worker.wg.Add(1)
		go func() {
			defer worker.wg.Done()
			worker.runBackgroundTask(ctx, task)
		}()
	}

	return worker, nil
}

// Wait blocks until every periodic loop has observed context cancellation.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) runBackgroundTask(ctx context.Context, task Task) {
	taskLog := w.log.With(
		logger.NewField("task", task.Info()),
		logger.NewField("ttl", task.TTL().String()),
	)

	ttl := task.TTL()
	if ttl <= 0 {
		taskLog.Warn("invalid TTL, skipping periodic execution")
		return
	}
	taskLog.Info("starting periodic execution")

	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			taskLog.Info("stopping task (context cancelled)")
			return
		case <-ticker.C:
			w.executeTaskSafely(ctx, taskLog, task)
		}
	}
}

func (w *Worker) executeTaskSafely(ctx context.Context, log logger.Logger, task Task) {
	defer func() {
		if r := recover(); r != nil {
			log.With(
				logger.NewField("recover", r),
				logger.NewField("stack", string(debug.Stack())),
			).Error("background task panic")
		}
	}()

	if err := task.Do(ctx); err != nil {
		log.With(logger.NewField("error", err)).Error("background task failed")
	}
}
