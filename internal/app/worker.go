package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/TopPano/providence-engine/internal/core/domain"
	"github.com/TopPano/providence-engine/internal/core/ports"
	"github.com/TopPano/providence-engine/internal/engine/router"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// DefaultDrainTimeout bounds how long a stopping worker waits for running
// builds before canceling them.
const DefaultDrainTimeout = 10 * time.Minute

// Worker consumes BUILD messages and runs the requested builds.
type Worker struct {
	cfg     *domain.Config
	router  *router.Router
	handler *BuildHandler
	logger  ports.Logger
	closers []func() error

	drainTimeout time.Duration

	mu       sync.RWMutex
	draining bool
}

// NewWorker creates a Worker. closers run once Run returns.
func NewWorker(cfg *domain.Config, r *router.Router, handler *BuildHandler, logger ports.Logger, closers ...func() error) *Worker {
	return &Worker{
		cfg:          cfg,
		router:       r,
		handler:      handler,
		logger:       logger,
		closers:      closers,
		drainTimeout: DefaultDrainTimeout,
	}
}

// WithDrainTimeout overrides DefaultDrainTimeout.
func (w *Worker) WithDrainTimeout(d time.Duration) *Worker {
	w.drainTimeout = d
	return w
}

// Run serves BUILD messages until ctx is canceled, then stops accepting new
// requests and waits for running builds to finish.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.cfg.Validate(); err != nil {
		return err
	}

	// Builds outlive ctx so a shutdown drains them instead of aborting.
	buildCtx, cancelBuilds := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelBuilds()

	g := new(errgroup.Group)
	g.SetLimit(w.cfg.Worker.MaxConcurrentBuilds)

	w.router.AddRoute(BuildMessageType, func(_ context.Context, msg router.Message) {
		w.mu.RLock()
		defer w.mu.RUnlock()

		if w.draining {
			w.logger.Warn("worker is draining, rejecting build for channel " + msg.ChannelID)
			w.handler.Reject(msg, domain.Tag(context.Canceled, zerr.New("worker is shutting down")))
			return
		}
		g.Go(func() error {
			w.handler.Handle(buildCtx, msg)
			return nil
		})
	})

	sub, err := w.router.Start(ctx)
	if err != nil {
		return err
	}
	w.logger.Info("worker started")

	<-ctx.Done()
	w.logger.Info("worker draining")

	if err := sub.Unsubscribe(); err != nil {
		w.logger.Error(zerr.Wrap(err, "failed to unsubscribe"))
	}

	done := make(chan struct{})
	go func() {
		// Taking the write lock waits for dispatches blocked on the build limit.
		w.mu.Lock()
		w.draining = true
		w.mu.Unlock()
		_ = g.Wait()
		close(done)
	}()

	timer := time.NewTimer(w.drainTimeout)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
		w.logger.Warn("drain timeout elapsed, canceling running builds")
		cancelBuilds()
		<-done
	}

	w.logger.Info("worker stopped")
	return w.close()
}

func (w *Worker) close() error {
	var errs []error
	for _, c := range w.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
