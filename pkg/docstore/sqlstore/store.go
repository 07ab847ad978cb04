// Package sqlstore implements docstore.Client over a single gorm-managed
// table. Documents are kept as BSON bodies; filtering and ordering happen in
// process, so it suits local development and tests rather than large data.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"time"

	"github.com/angelmondragon/universe-backend/pkg/config"
	"github.com/angelmondragon/universe-backend/pkg/docstore"
	"github.com/angelmondragon/universe-backend/pkg/logger"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type record struct {
	Seq        int64     `gorm:"primaryKey;autoIncrement"`
	Collection string    `gorm:"size:128;not null;uniqueIndex:idx_documents_collection_doc_id"`
	DocID      string    `gorm:"column:doc_id;size:24;not null;uniqueIndex:idx_documents_collection_doc_id"`
	Body       []byte    `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (record) TableName() string { return "documents" }

// Store keeps every collection in the documents table.
type Store struct {
	conn *gorm.DB
}

var _ docstore.Client = (*Store)(nil)

// New opens the sqlite or postgres database named by cfg and migrates the
// documents table.
func New(ctx context.Context, cfg config.StoreConfig, logg *logger.Logger) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.DriverName() {
	case config.StoreDriverSQLite:
		if cfg.URL == "" {
			return nil, fmt.Errorf("sqlite path is required: %w", docstore.ErrUnavailable)
		}
		dialector = sqlite.Open(cfg.URL)
	case config.StoreDriverPostgres:
		if cfg.URL == "" {
			return nil, fmt.Errorf("postgres DSN is required: %w", docstore.ErrUnavailable)
		}
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.URL,
			PreferSimpleProtocol: true,
		})
	case config.StoreDriverMemory:
		return NewInMemory(ctx)
	default:
		return nil, fmt.Errorf("sqlstore: unsupported driver %q", cfg.Driver)
	}

	store, err := open(ctx, dialector, cfg.DriverName() == config.StoreDriverSQLite)
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 && cfg.DriverName() == config.StoreDriverPostgres {
		if sqlDB, err := store.conn.DB(); err == nil {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "driver", cfg.DriverName()), "database connection established")
	}
	return store, nil
}

// NewInMemory returns a store backed by a private in-memory sqlite database.
func NewInMemory(ctx context.Context) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	return open(ctx, sqlite.Open(dsn), true)
}

func open(ctx context.Context, dialector gorm.Dialector, singleConn bool) (*Store, error) {
	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening db connection: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql db handle: %w", err)
	}
	if singleConn {
		// sqlite serialises writers; a single connection also keeps an
		// in-memory database alive for the life of the store.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	}

	if err := conn.WithContext(ctx).AutoMigrate(&record{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrating documents table: %w", err)
	}
	return &Store{conn: conn}, nil
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

	body, err := bson.Marshal(bson.M(payload))
	if err != nil {
		return docstore.ID{}, fmt.Errorf("encoding document: %w", err)
	}

	row := record{
		Collection: collection,
		DocID:      id.Hex(),
		Body:       body,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.conn.WithContext(ctx).Create(&row).Error; err != nil {
		return docstore.ID{}, classify(err)
	}
	return id, nil
}

func (s *Store) FindOne(ctx context.Context, collection string, filter docstore.Filter) (docstore.Document, error) {
	_, doc, err := s.first(ctx, collection, filter)
	return doc, err
}

func (s *Store) Find(ctx context.Context, collection string, filter docstore.Filter, order docstore.Sort) ([]docstore.Document, error) {
	rows, err := s.load(ctx, collection, filter)
	if err != nil {
		return nil, err
	}

	docs := make([]docstore.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, row.doc)
	}
	if !order.IsZero() {
		sortDocuments(docs, order)
	}
	return docs, nil
}

func (s *Store) DeleteOne(ctx context.Context, collection string, filter docstore.Filter) (int64, error) {
	seq, _, err := s.first(ctx, collection, filter)
	if errors.Is(err, docstore.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	res := s.conn.WithContext(ctx).Where("seq = ?", seq).Delete(&record{})
	if res.Error != nil {
		return 0, classify(res.Error)
	}
	return res.RowsAffected, nil
}

// Ping verifies the datasource is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", docstore.ErrUnavailable, err)
	}
	return nil
}

// CollectionNames lists collections holding at least one document.
func (s *Store) CollectionNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := s.conn.WithContext(ctx).Model(&record{}).Distinct("collection").Pluck("collection", &names).Error; err != nil {
		return nil, classify(err)
	}
	sort.Strings(names)
	return names, nil
}

// Close shuts down the pooled connections.
func (s *Store) Close(context.Context) error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type loaded struct {
	seq int64
	doc docstore.Document
}

// first returns the earliest inserted match, using the id index when the
// filter is a plain id lookup.
func (s *Store) first(ctx context.Context, collection string, filter docstore.Filter) (int64, docstore.Document, error) {
	if eq, ok := filter.(docstore.Eq); ok && eq.Field == docstore.IDField {
		id, ok := eq.Value.(docstore.ID)
		if !ok {
			return 0, nil, docstore.ErrNotFound
		}
		var row record
		err := s.conn.WithContext(ctx).
			Where("collection = ? AND doc_id = ?", collection, id.Hex()).
			Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil, docstore.ErrNotFound
		}
		if err != nil {
			return 0, nil, classify(err)
		}
		doc, err := decode(row.Body)
		if err != nil {
			return 0, nil, err
		}
		return row.Seq, doc, nil
	}

	rows, err := s.load(ctx, collection, filter)
	if err != nil {
		return 0, nil, err
	}
	if len(rows) == 0 {
		return 0, nil, docstore.ErrNotFound
	}
	return rows[0].seq, rows[0].doc, nil
}

func (s *Store) load(ctx context.Context, collection string, filter docstore.Filter) ([]loaded, error) {
	var rows []record
	if err := s.conn.WithContext(ctx).Where("collection = ?", collection).Order("seq").Find(&rows).Error; err != nil {
		return nil, classify(err)
	}
	if filter == nil {
		filter = docstore.All{}
	}

	out := make([]loaded, 0, len(rows))
	for _, row := range rows {
		doc, err := decode(row.Body)
		if err != nil {
			return nil, err
		}
		if filter.Matches(doc) {
			out = append(out, loaded{seq: row.Seq, doc: doc})
		}
	}
	return out, nil
}

func decode(body []byte) (docstore.Document, error) {
	var m bson.M
	if err := bson.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return docstore.Document(m), nil
}

func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %v", docstore.ErrUnavailable, err)
	}
	return err
}
