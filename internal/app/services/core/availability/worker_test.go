package availability

import (
	"availability-service/internal/app/models"
	"availability-service/internal/pkg/constvars"
	"availability-service/internal/pkg/dto/responses"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeWeekExporter struct {
	calls    int
	exported int
	err      error
}

func (e *fakeWeekExporter) ExportCachedWeeks(ctx context.Context) (int, error) {
	e.calls++
	return e.exported, e.err
}

func TestSnapshotWorker_RunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("Exports and releases the leader lock", func(t *testing.T) {
		locker := new(MockLockerService)
		locker.On("TryLock", ctx, constvars.SnapshotLeaderLockKey, leaderLockTTL).Return(true, "leader-1", nil).Once()
		locker.On("Unlock", mock.Anything, constvars.SnapshotLeaderLockKey, "leader-1").Return(nil).Once()
		exporter := &fakeWeekExporter{exported: 3}

		NewSnapshotWorker(zap.NewNop(), "@daily", locker, exporter).RunOnce(ctx)

		assert.Equal(t, 1, exporter.calls)
		locker.AssertExpectations(t)
	})

	t.Run("Partial failure still releases the lock", func(t *testing.T) {
		locker := new(MockLockerService)
		locker.On("TryLock", ctx, constvars.SnapshotLeaderLockKey, leaderLockTTL).Return(true, "leader-1", nil).Once()
		locker.On("Unlock", mock.Anything, constvars.SnapshotLeaderLockKey, "leader-1").Return(nil).Once()
		exporter := &fakeWeekExporter{exported: 1, err: errors.New("bucket missing")}

		NewSnapshotWorker(zap.NewNop(), "@daily", locker, exporter).RunOnce(ctx)

		assert.Equal(t, 1, exporter.calls)
		locker.AssertExpectations(t)
	})

	t.Run("Unlock failure is logged", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		locker := new(MockLockerService)
		locker.On("TryLock", ctx, constvars.SnapshotLeaderLockKey, leaderLockTTL).Return(true, "leader-1", nil).Once()
		locker.On("Unlock", mock.Anything, constvars.SnapshotLeaderLockKey, "leader-1").Return(errors.New("connection reset")).Once()

		NewSnapshotWorker(zap.New(core), "@daily", locker, &fakeWeekExporter{exported: 1}).RunOnce(ctx)

		entries := logs.FilterMessage("availability.worker: failed to release leader lock").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "connection reset", entries[0].ContextMap()["error"])
	})

	t.Run("Another instance holds the lock", func(t *testing.T) {
		locker := new(MockLockerService)
		locker.On("TryLock", ctx, constvars.SnapshotLeaderLockKey, leaderLockTTL).Return(false, "", nil).Once()
		exporter := &fakeWeekExporter{}

		NewSnapshotWorker(zap.NewNop(), "@daily", locker, exporter).RunOnce(ctx)

		assert.Zero(t, exporter.calls)
		locker.AssertNotCalled(t, "Unlock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Lock backend unavailable", func(t *testing.T) {
		locker := new(MockLockerService)
		locker.On("TryLock", ctx, constvars.SnapshotLeaderLockKey, leaderLockTTL).Return(false, "", errors.New("connection refused")).Once()
		exporter := &fakeWeekExporter{}

		NewSnapshotWorker(zap.NewNop(), "@daily", locker, exporter).RunOnce(ctx)

		assert.Zero(t, exporter.calls)
	})
}

func TestSnapshotWorker_StartStop(t *testing.T) {
	t.Run("Invalid spec falls back to the default schedule", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		worker := NewSnapshotWorker(zap.New(core), "not a cron spec", new(MockLockerService), &fakeWeekExporter{})

		worker.Start(context.Background())
		require.NotNil(t, worker.cron)
		assert.Len(t, worker.cron.Entries(), 1)
		assert.Equal(t, 1, logs.FilterMessageSnippet("falling back to default").Len())
		assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())

		worker.Stop()
		worker.Stop()
	})

	t.Run("Valid spec", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		worker := NewSnapshotWorker(zap.New(core), "@every 1h", new(MockLockerService), &fakeWeekExporter{})

		worker.Start(context.Background())
		defer worker.Stop()

		assert.Len(t, worker.cron.Entries(), 1)
		assert.Zero(t, logs.Len())
	})
}

func TestSnapshotWorker_SharedStore(t *testing.T) {
	ctx := context.Background()
	ttl := time.Hour

	// prac-2 was last listed by another instance; only the shared store knows it.
	stored := func(slots []models.RemoteSlot) string {
		body, err := json.Marshal(slots)
		require.NoError(t, err)
		return string(body)
	}
	redisRepo := new(MockRedisRepository)
	redisRepo.On("ScanKeys", mock.Anything, constvars.SlotSnapshotKeyPrefix+"*").Return([]string{
		constvars.SlotSnapshotKeyPrefix + "prac-1",
		constvars.SlotSnapshotKeyPrefix + "prac-2",
	}, nil).Once()
	redisRepo.On("Get", mock.Anything, constvars.SlotSnapshotKeyPrefix+"prac-1").Return(stored([]models.RemoteSlot{}), nil).Once()
	redisRepo.On("Get", mock.Anything, constvars.SlotSnapshotKeyPrefix+"prac-2").
		Return(stored([]models.RemoteSlot{{ID: "slot-2", StartTime: slotStart, IsBooked: true}}), nil).Once()

	client := new(MockSlotRemoteClient)
	uc, f := newTestUsecaseWithStore(t, client, NewRedisSlotStore(redisRepo, ttl))
	f.storage.On("UploadJSON", mock.Anything, mock.Anything, "snapshots", "availability/prac-1/2024-05-13.json").
		Return("availability/prac-1/2024-05-13.json", nil).Once()
	f.storage.On("UploadJSON", mock.Anything, mock.Anything, "snapshots", "availability/prac-2/2024-05-13.json").
		Return("availability/prac-2/2024-05-13.json", nil).Once()

	locker := new(MockLockerService)
	locker.On("TryLock", ctx, constvars.SnapshotLeaderLockKey, leaderLockTTL).Return(true, "leader-1", nil).Once()
	locker.On("Unlock", mock.Anything, constvars.SnapshotLeaderLockKey, "leader-1").Return(nil).Once()

	NewSnapshotWorker(zap.NewNop(), "@daily", locker, uc).RunOnce(ctx)

	f.storage.AssertExpectations(t)
	redisRepo.AssertExpectations(t)
	client.AssertNotCalled(t, "ListSlots", mock.Anything, mock.Anything)

	var archived responses.WeekSchedule
	for _, call := range f.storage.Calls {
		if call.Arguments.Get(3) == "availability/prac-2/2024-05-13.json" {
			require.NoError(t, json.Unmarshal(call.Arguments.Get(1).([]byte), &archived))
		}
	}
	require.Len(t, archived.Days, 7)
	assert.True(t, archived.Days[wednesday].Slots[slot0900].Booked)
}
