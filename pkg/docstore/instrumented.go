package docstore

import (
	"context"
	"errors"
	"time"
)

// OperationObserver receives the outcome of every store round-trip.
type OperationObserver interface {
	ObserveOperation(collection, op string, duration time.Duration, err error)
}

type instrumented struct {
	Client
	observer OperationObserver
}

// Instrument wraps client so each Store call is reported to observer.
// A nil observer returns client unchanged.
func Instrument(client Client, observer OperationObserver) Client {
	if client == nil || observer == nil {
		return client
	}
	return &instrumented{Client: client, observer: observer}
}

func (i *instrumented) InsertOne(ctx context.Context, collection string, doc Document) (ID, error) {
	start := time.Now()
	id, err := i.Client.InsertOne(ctx, collection, doc)
	i.observer.ObserveOperation(collection, "insert_one", time.Since(start), err)
	return id, err
}

func (i *instrumented) FindOne(ctx context.Context, collection string, filter Filter) (Document, error) {
	start := time.Now()
	doc, err := i.Client.FindOne(ctx, collection, filter)
	observed := err
	if errors.Is(err, ErrNotFound) {
		observed = nil
	}
	i.observer.ObserveOperation(collection, "find_one", time.Since(start), observed)
	return doc, err
}

func (i *instrumented) Find(ctx context.Context, collection string, filter Filter, sort Sort) ([]Document, error) {
	start := time.Now()
	docs, err := i.Client.Find(ctx, collection, filter, sort)
	i.observer.ObserveOperation(collection, "find", time.Since(start), err)
	return docs, err
}

func (i *instrumented) DeleteOne(ctx context.Context, collection string, filter Filter) (int64, error) {
	start := time.Now()
	n, err := i.Client.DeleteOne(ctx, collection, filter)
	i.observer.ObserveOperation(collection, "delete_one", time.Since(start), err)
	return n, err
}
