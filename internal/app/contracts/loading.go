package contracts

import "context"

// LoadingSet tracks slot keys with a toggle in flight. A key acquired with
// TryAcquire must be released with the returned token.
type LoadingSet interface {
	TryAcquire(ctx context.Context, key string) (acquired bool, token string, err error)
	Release(ctx context.Context, key, token string) error
	// Members returns the in-flight keys starting with prefix.
	Members(ctx context.Context, prefix string) (map[string]struct{}, error)
}
