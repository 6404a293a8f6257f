package camunda

import (
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"supplychain-insights/internal/common/logger"
	"supplychain-insights/internal/common/metrics"
)

// JobHandler processes one activated job and completes or fails it itself.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

type WorkerOptions struct {
	TaskType      string
	MaxJobsActive int
	Timeout       time.Duration
}

type Worker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// NewWorker opens a job worker for opts.TaskType. The active-jobs gauge is
// kept around every handled job.
func NewWorker(client zbc.Client, opts WorkerOptions, handler JobHandler, log logger.Logger) *Worker {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.WithFields(map[string]interface{}{"taskType": opts.TaskType})

	builder := client.NewJobWorker().
		JobType(opts.TaskType).
		Handler(instrument(opts.TaskType, handler)).
		MaxJobsActive(opts.MaxJobsActive)
	if opts.Timeout > 0 {
		builder = builder.Timeout(opts.Timeout)
	}

	w := &Worker{worker: builder.Open(), logger: log, taskType: opts.TaskType}
	log.Info("worker started", map[string]interface{}{"maxJobsActive": opts.MaxJobsActive})
	return w
}

func instrument(taskType string, handler JobHandler) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		active := metrics.WorkerJobsActive.WithLabelValues(taskType)
		active.Inc()
		defer active.Dec()
		handler.Handle(client, job)
	}
}

func (w *Worker) Stop() {
	w.logger.Info("stopping worker", nil)
	w.worker.Close()
	w.worker.AwaitClose()
}
