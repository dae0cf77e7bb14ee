package httpapi

import "context"

// ReadyChecker reports whether the backing store can serve requests.
type ReadyChecker interface {
    Ready(ctx context.Context) error
}
