// Package mongostore implements docstore.Client on top of MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/universe-backend/pkg/config"
	"github.com/angelmondragon/universe-backend/pkg/docstore"
	"github.com/angelmondragon/universe-backend/pkg/logger"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Store wraps a mongo client bound to a single database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ docstore.Client = (*Store)(nil)

// New connects to the configured deployment and verifies it with a ping.
func New(ctx context.Context, cfg config.StoreConfig, logg *logger.Logger) (*Store, error) {
	if cfg.URL == "" || cfg.Name == "" {
		return nil, fmt.Errorf("mongo url and database name are required: %w", docstore.ErrUnavailable)
	}

	opts := options.Client().ApplyURI(cfg.URL)
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
		opts.SetServerSelectionTimeout(cfg.ConnectTimeout)
	}
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	store := &Store{client: client, db: client.Database(cfg.Name)}

	pingCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	if err := store.Ping(pingCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "database", cfg.Name), "mongo connection established")
	}
	return store, nil
}

func (s *Store) InsertOne(ctx context.Context, collection string, doc docstore.Document) (docstore.ID, error) {
	payload := doc.Clone()
	if payload == nil {
		payload = docstore.Document{}
	}
	id, ok := payload.ID()
	if !ok {
		id = docstore.NewID()
		payload[docstore.IDField] = id
	}
	if _, err := s.db.Collection(collection).InsertOne(ctx, bson.M(payload)); err != nil {
		return docstore.ID{}, classify(err)
	}
	return id, nil
}

func (s *Store) FindOne(ctx context.Context, collection string, filter docstore.Filter) (docstore.Document, error) {
	query, err := Translate(filter)
	if err != nil {
		return nil, err
	}
	var out bson.M
	if err := s.db.Collection(collection).FindOne(ctx, query).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, docstore.ErrNotFound
		}
		return nil, classify(err)
	}
	return docstore.Document(out), nil
}

func (s *Store) Find(ctx context.Context, collection string, filter docstore.Filter, sort docstore.Sort) ([]docstore.Document, error) {
	query, err := Translate(filter)
	if err != nil {
		return nil, err
	}
	opts := options.Find()
	if !sort.IsZero() {
		opts.SetSort(bson.D{{Key: sort.Field, Value: int(sort.Order)}})
	}

	cur, err := s.db.Collection(collection).Find(ctx, query, opts)
	if err != nil {
		return nil, classify(err)
	}
	var rows []bson.M
	if err := cur.All(ctx, &rows); err != nil {
		return nil, classify(err)
	}

	docs := make([]docstore.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, docstore.Document(row))
	}
	return docs, nil
}

func (s *Store) DeleteOne(ctx context.Context, collection string, filter docstore.Filter) (int64, error) {
	query, err := Translate(filter)
	if err != nil {
		return 0, err
	}
	res, err := s.db.Collection(collection).DeleteOne(ctx, query)
	if err != nil {
		return 0, classify(err)
	}
	return res.DeletedCount, nil
}

// Ping checks the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %v", docstore.ErrUnavailable, err)
	}
	return nil
}

// CollectionNames lists the collections of the bound database.
func (s *Store) CollectionNames(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, classify(err)
	}
	return names, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%w: %v", docstore.ErrUnavailable, err)
	}
	return err
}
