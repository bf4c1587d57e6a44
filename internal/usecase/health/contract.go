package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// SearchPinger checks remote search service availability.
type SearchPinger interface {
	Ping(ctx context.Context) error
}
