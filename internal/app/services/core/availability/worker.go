package availability

import (
	"availability-service/internal/app/contracts"
	"availability-service/internal/pkg/constvars"
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const leaderLockTTL = 2 * time.Minute

// weekExporter is implemented by AvailabilityUsecase.
type weekExporter interface {
	ExportCachedWeeks(ctx context.Context) (int, error)
}

// SnapshotWorker periodically archives the current week of every practitioner in
// the snapshot store. Only the instance holding the leader lock runs a pass, so
// with several instances the store must be the shared redis one.
type SnapshotWorker struct {
	log      *zap.Logger
	cronSpec string
	locker   contracts.LockerService
	exporter weekExporter
	cron     *cron.Cron
	runCtx   context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
}

func NewSnapshotWorker(log *zap.Logger, cronSpec string, lockerSvc contracts.LockerService, exporter weekExporter) *SnapshotWorker {
	return &SnapshotWorker{log: log, cronSpec: cronSpec, locker: lockerSvc, exporter: exporter}
}

// Start schedules the worker on its cron spec.
func (w *SnapshotWorker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	_, err := c.AddFunc(w.cronSpec, func() { w.RunOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("availability.worker: failed to schedule with provided cron spec; falling back to default",
			zap.String("cron_spec", w.cronSpec),
			zap.Error(err),
		)
		c = cron.New()
		_, err = c.AddFunc(constvars.DefaultSnapshotWorkerCronSpec, func() { w.RunOnce(w.runCtx) })
		if err != nil {
			w.log.Error("availability.worker: failed to schedule with default cron spec; worker disabled",
				zap.String("cron_spec", constvars.DefaultSnapshotWorkerCronSpec),
				zap.Error(err),
			)
		}
	}
	c.Start()
	w.cron = c
}

// Stop cancels in-flight passes and waits for running jobs to finish.
func (w *SnapshotWorker) Stop() {
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
		}
		if w.cron != nil {
			<-w.cron.Stop().Done()
		}
	})
}

// RunOnce performs one archive pass if the leader lock can be taken.
func (w *SnapshotWorker) RunOnce(ctx context.Context) {
	acquired, token, err := w.locker.TryLock(ctx, constvars.SnapshotLeaderLockKey, leaderLockTTL)
	if err != nil {
		w.log.Warn("availability.worker: leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Info("availability.worker: leader lock not acquired; another instance is running")
		return
	}
	defer w.releaseLeaderLock(context.WithoutCancel(ctx), token)

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go func() {
		tick := time.NewTicker(leaderLockTTL / 2)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := w.locker.Refresh(refreshCtx, constvars.SnapshotLeaderLockKey, token, leaderLockTTL); err != nil {
					w.log.Warn("availability.worker: failed to refresh leader lock TTL", zap.Error(err))
				}
			}
		}
	}()

	exported, err := w.exporter.ExportCachedWeeks(ctx)
	if err != nil {
		w.log.Warn("availability.worker: some snapshots failed", zap.Int("exported", exported), zap.Error(err))
		return
	}
	w.log.Info("availability.worker: snapshots exported", zap.Int("exported", exported))
}

func (w *SnapshotWorker) releaseLeaderLock(ctx context.Context, token string) {
	if err := w.locker.Unlock(ctx, constvars.SnapshotLeaderLockKey, token); err != nil {
		w.log.Warn("availability.worker: failed to release leader lock", zap.Error(err))
	}
}
