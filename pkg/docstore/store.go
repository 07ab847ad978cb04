package docstore

import "context"

// Store is the persistence surface the services depend on. Every call is a
// single round-trip; adapters must honour ctx cancellation.
type Store interface {
	// InsertOne stores doc in collection, assigning an ID when doc has none.
	InsertOne(ctx context.Context, collection string, doc Document) (ID, error)
	// FindOne returns the first match or ErrNotFound.
	FindOne(ctx context.Context, collection string, filter Filter) (Document, error)
	// Find returns every match ordered by sort.
	Find(ctx context.Context, collection string, filter Filter, sort Sort) ([]Document, error)
	// DeleteOne removes the first match and reports how many documents were removed.
	DeleteOne(ctx context.Context, collection string, filter Filter) (int64, error)
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Inspector lists the collections present in the store, for diagnostics.
type Inspector interface {
	CollectionNames(ctx context.Context) ([]string, error)
}

// Client is a connected store with its lifecycle hooks.
type Client interface {
	Store
	Pinger
	Inspector
	Close(ctx context.Context) error
}
