package sweeper

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// IntentStore, IdemStore and RateStore expose the purge side of the three
// TTL-bearing tables. Sweeping is best effort: a failed pass is retried on
// the next tick.
type IntentStore interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type IdemStore interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type RateStore interface {
	DeleteOlder(ctx context.Context, cutoff time.Time) (int64, error)
}

type Service struct {
	intentStore   IntentStore
	idemStore     IdemStore
	rateStore     RateStore
	rateWindow    time.Duration
	sweepInterval time.Duration
	workerPool    WorkerPoolI
	now           func() time.Time
}

func New(intentStore IntentStore, idemStore IdemStore, rateStore RateStore, rateWindow time.Duration) *Service {
	return &Service{
		intentStore:   intentStore,
		idemStore:     idemStore,
		rateStore:     rateStore,
		rateWindow:    rateWindow,
		sweepInterval: time.Minute,
		workerPool:    NewWorkerPool(3),
		now:           time.Now,
	}
}

// Start runs the sweep loop until ctx is canceled.
func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Sweeper started", zap.Duration("interval", s.sweepInterval))
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()
	defer s.workerPool.Close()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping sweeper")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Service) sweep(ctx context.Context) {
	now := s.now()

	var g errgroup.Group
	g.Go(func() error {
		return s.workerPool.AddTask(ctx, "intents", func() error {
			n, err := s.intentStore.DeleteExpired(ctx, now)
			logPurge("withdrawal intents", n, err)
			return err
		})
	})
	g.Go(func() error {
		return s.workerPool.AddTask(ctx, "idempotency", func() error {
			n, err := s.idemStore.DeleteExpired(ctx, now)
			logPurge("idempotency records", n, err)
			return err
		})
	})
	g.Go(func() error {
		return s.workerPool.AddTask(ctx, "rate_events", func() error {
			n, err := s.rateStore.DeleteOlder(ctx, now.Add(-s.rateWindow))
			logPurge("rate events", n, err)
			return err
		})
	})

	if err := g.Wait(); err != nil {
		zap.L().Error("Failed to dispatch sweep tasks", zap.Error(err))
	}
}

func logPurge(what string, n int64, err error) {
	if err != nil || n == 0 {
		return
	}
	zap.L().Info("purged expired rows", zap.String("table", what), zap.Int64("count", n))
}
