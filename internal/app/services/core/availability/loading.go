package availability

import (
	"availability-service/internal/app/contracts"
	"availability-service/internal/pkg/constvars"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LoadingKey identifies a slot by practitioner and absolute start instant so a
// key survives any reordering of the grid.
func LoadingKey(practitionerID string, start time.Time) string {
	return fmt.Sprintf("%s%d", LoadingKeyPrefix(practitionerID), start.UnixMilli())
}

func LoadingKeyPrefix(practitionerID string) string {
	return fmt.Sprintf("%s:%s:", constvars.LoadingKeyPrefix, practitionerID)
}

type memoryLoadingSet struct {
	mu   sync.Mutex
	keys map[string]string
}

// NewMemoryLoadingSet keeps in-flight keys in process memory. Suitable for a single instance.
func NewMemoryLoadingSet() contracts.LoadingSet {
	return &memoryLoadingSet{keys: make(map[string]string)}
}

func (s *memoryLoadingSet) TryAcquire(ctx context.Context, key string) (bool, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.keys[key]; busy {
		return false, "", nil
	}
	token := uuid.NewString()
	s.keys[key] = token
	return true, token, nil
}

func (s *memoryLoadingSet) Release(ctx context.Context, key, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keys[key] == token {
		delete(s.keys, key)
	}
	return nil
}

func (s *memoryLoadingSet) Members(ctx context.Context, prefix string) (map[string]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]struct{})
	for key := range s.keys {
		if strings.HasPrefix(key, prefix) {
			out[key] = struct{}{}
		}
	}
	return out, nil
}

// lockerLoadingSet shares in-flight keys across instances through redis. The TTL
// bounds how long a key can outlive a crashed instance.
type lockerLoadingSet struct {
	locker    contracts.LockerService
	redisRepo contracts.RedisRepository
	ttl       time.Duration
}

func NewLockerLoadingSet(locker contracts.LockerService, redisRepo contracts.RedisRepository, ttl time.Duration) contracts.LoadingSet {
	return &lockerLoadingSet{
		locker:    locker,
		redisRepo: redisRepo,
		ttl:       ttl,
	}
}

func (s *lockerLoadingSet) TryAcquire(ctx context.Context, key string) (bool, string, error) {
	return s.locker.TryLock(ctx, key, s.ttl)
}

func (s *lockerLoadingSet) Release(ctx context.Context, key, token string) error {
	return s.locker.Unlock(ctx, key, token)
}

func (s *lockerLoadingSet) Members(ctx context.Context, prefix string) (map[string]struct{}, error) {
	keys, err := s.redisRepo.ScanKeys(ctx, prefix+"*")
	if err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		out[key] = struct{}{}
	}
	return out, nil
}
