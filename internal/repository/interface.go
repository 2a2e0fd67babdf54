package repository

import "context"

// DB is implemented by anything whose liveness the health check can probe.
type DB interface {
	Ping(ctx context.Context) error
}
