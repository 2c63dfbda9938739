package notifier

import (
	"context"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Task is one notification send. Its error is logged and then dropped.
type Task func(ctx context.Context) error

// Dispatcher runs notification tasks in the background. Callers never wait for
// a task; failures and panics end in the log.
type Dispatcher struct {
	wg      conc.WaitGroup
	timeout time.Duration
	log     *zap.Logger
}

func NewDispatcher(timeout time.Duration, log *zap.Logger) *Dispatcher {
	return &Dispatcher{timeout: timeout, log: log}
}

// Go starts task and returns immediately. The task context keeps ctx's values
// but not its cancellation, so it survives the end of the HTTP request.
func (d *Dispatcher) Go(ctx context.Context, name string, task Task, fields ...zap.Field) {
	taskCtx := context.WithoutCancel(ctx)

	d.wg.Go(func() {
		ctx, cancel := context.WithTimeout(taskCtx, d.timeout)
		defer cancel()

		ctx, span := otel.Tracer("notifier").Start(ctx, "notify."+name)
		defer span.End()

		log := d.log.With(append(fields, zap.String("task", name))...)
		start := time.Now()

		var err error
		var pc panics.Catcher
		pc.Try(func() { err = task(ctx) })

		if r := pc.Recovered(); r != nil {
			span.SetStatus(codes.Error, "panic")
			log.Error("Notification task panicked",
				zap.String("panic", r.String()))
			return
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.Error("Notification task failed",
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err))
			return
		}

		span.SetAttributes(attribute.Bool("notify.delivered", true))
		log.Debug("Notification task finished", zap.Duration("elapsed", time.Since(start)))
	})
}

// Wait blocks until every started task has finished or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
