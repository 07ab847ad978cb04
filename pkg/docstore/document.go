// Package docstore defines the document store port used by the services and
// the filter language both adapters understand.
package docstore

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// IDField is the key holding a document's store-assigned identifier.
const IDField = "_id"

// Timestamp keys stamped on every write.
const (
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

var (
	// ErrNotFound is returned by FindOne when no document matches.
	ErrNotFound = errors.New("docstore: document not found")
	// ErrInvalidID signals an identifier that is not a valid ObjectID hex string.
	ErrInvalidID = errors.New("docstore: invalid id")
	// ErrUnavailable signals that no store is configured or it cannot be reached.
	ErrUnavailable = errors.New("docstore: store unavailable")
)

// ID is the native identifier type shared by every adapter.
type ID = bson.ObjectID

// Document is a schema-less stored record. Values are whatever the adapter
// decoded: strings, float64, bool, nil, time values, arrays and ids.
type Document map[string]any

// NewID returns a fresh identifier.
func NewID() ID {
	return bson.NewObjectID()
}

// ParseID converts the public hex form back into an ID.
func ParseID(raw string) (ID, error) {
	id, err := bson.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return ID{}, ErrInvalidID
	}
	return id, nil
}

// ID returns the document identifier when present.
func (d Document) ID() (ID, bool) {
	id, ok := d[IDField].(ID)
	return id, ok
}

// String returns the string stored at key, or "" when missing or not a string.
func (d Document) String(key string) string {
	v, _ := d[key].(string)
	return v
}

// Clone returns a shallow copy.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// SortOrder mirrors the mongo sort direction values.
type SortOrder int

const (
	Ascending  SortOrder = 1
	Descending SortOrder = -1
)

// Sort orders Find results by a single field. The zero value keeps store order.
type Sort struct {
	Field string
	Order SortOrder
}

// IsZero reports whether no ordering was requested.
func (s Sort) IsZero() bool {
	return s.Field == ""
}
