package ports

import "context"

// HealthChecker reports the health of a single dependency.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}
