package middlewares

import (
	"availability-service/internal/pkg/exceptions"
	"availability-service/internal/pkg/utils"
	"net/http"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// MutationLimiter applies a token bucket per practitioner to mutating endpoints.
// At most size practitioners are tracked; the least recently active one is
// forgotten first and starts again with a full bucket.
type MutationLimiter struct {
	limiters *lru.Cache[string, *rate.Limiter]
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
}

func NewMutationLimiter(perMinute, burst, size int) (*MutationLimiter, error) {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	if burst <= 0 {
		burst = 1
	}
	limiters, err := lru.New[string, *rate.Limiter](size)
	if err != nil {
		return nil, err
	}
	return &MutationLimiter{
		limiters: limiters,
		limit:    limit,
		burst:    burst,
	}, nil
}

func (l *MutationLimiter) limiterFor(practitionerID string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	limiter, exists := l.limiters.Get(practitionerID)
	if !exists {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters.Add(practitionerID, limiter)
	}
	return limiter
}

// Allow consumes one token for practitionerID.
func (l *MutationLimiter) Allow(practitionerID string) bool {
	return l.limiterFor(practitionerID).Allow()
}

// LimitMutations must run after Authenticate.
func (m *Middlewares) LimitMutations(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.MutationLimiter.Allow(utils.PractitionerIDFromContext(r.Context())) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyMutations(nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}
