package availability

import (
	"availability-service/internal/app/contracts"
	"availability-service/internal/app/models"
	"availability-service/internal/pkg/constvars"
	"availability-service/internal/pkg/exceptions"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

var errInvalidSnapshotSize = errors.New("slot snapshot size must be positive")

// memorySlotStore holds the last confirmed lists in process memory. Entries
// expire after ttl and the least recently used practitioner is evicted first.
type memorySlotStore struct {
	cache *expirable.LRU[string, []models.RemoteSlot]
}

func NewMemorySlotStore(size int, ttl time.Duration) (contracts.SlotSnapshotStore, error) {
	if size <= 0 {
		return nil, errInvalidSnapshotSize
	}
	return &memorySlotStore{cache: expirable.NewLRU[string, []models.RemoteSlot](size, nil, ttl)}, nil
}

// Get returns a copy of the cached list.
func (s *memorySlotStore) Get(ctx context.Context, practitionerID string) ([]models.RemoteSlot, bool, error) {
	slots, ok := s.cache.Get(practitionerID)
	if !ok {
		return nil, false, nil
	}
	return cloneSlots(slots), true, nil
}

func (s *memorySlotStore) Replace(ctx context.Context, practitionerID string, slots []models.RemoteSlot) error {
	s.cache.Add(practitionerID, cloneSlots(slots))
	return nil
}

func (s *memorySlotStore) Invalidate(ctx context.Context, practitionerID string) error {
	s.cache.Remove(practitionerID)
	return nil
}

// PractitionerIDs lists cached practitioners, oldest first.
func (s *memorySlotStore) PractitionerIDs(ctx context.Context) ([]string, error) {
	return s.cache.Keys(), nil
}

// redisSlotStore shares the last confirmed lists between instances so any of
// them can archive every practitioner.
type redisSlotStore struct {
	redisRepo contracts.RedisRepository
	ttl       time.Duration
}

func NewRedisSlotStore(redisRepo contracts.RedisRepository, ttl time.Duration) contracts.SlotSnapshotStore {
	return &redisSlotStore{redisRepo: redisRepo, ttl: ttl}
}

func (s *redisSlotStore) Get(ctx context.Context, practitionerID string) ([]models.RemoteSlot, bool, error) {
	key := slotSnapshotKey(practitionerID)
	data, err := s.redisRepo.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if data == "" {
		return nil, false, nil
	}

	var slots []models.RemoteSlot
	if err := json.Unmarshal([]byte(data), &slots); err != nil {
		return nil, false, exceptions.ErrSlotSnapshotCorrupted(err, key)
	}
	return slots, true, nil
}

func (s *redisSlotStore) Replace(ctx context.Context, practitionerID string, slots []models.RemoteSlot) error {
	if slots == nil {
		slots = []models.RemoteSlot{}
	}
	return s.redisRepo.Set(ctx, slotSnapshotKey(practitionerID), slots, s.ttl)
}

func (s *redisSlotStore) Invalidate(ctx context.Context, practitionerID string) error {
	return s.redisRepo.Delete(ctx, slotSnapshotKey(practitionerID))
}

func (s *redisSlotStore) PractitionerIDs(ctx context.Context) ([]string, error) {
	keys, err := s.redisRepo.ScanKeys(ctx, constvars.SlotSnapshotKeyPrefix+"*")
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, strings.TrimPrefix(key, constvars.SlotSnapshotKeyPrefix))
	}
	return ids, nil
}

func slotSnapshotKey(practitionerID string) string {
	return constvars.SlotSnapshotKeyPrefix + practitionerID
}

func cloneSlots(slots []models.RemoteSlot) []models.RemoteSlot {
	out := make([]models.RemoteSlot, len(slots))
	copy(out, slots)
	return out
}
