package docstore

import (
	"reflect"
	"strings"
)

// Filter is a predicate over documents. Adapters that cannot push a filter
// down to the server evaluate Matches in process.
type Filter interface {
	Matches(doc Document) bool
}

// All matches every document.
type All struct{}

func (All) Matches(Document) bool { return true }

// Eq matches documents whose Field equals Value exactly.
type Eq struct {
	Field string
	Value any
}

func (f Eq) Matches(doc Document) bool {
	v, ok := doc[f.Field]
	if !ok {
		return false
	}
	return reflect.DeepEqual(v, f.Value)
}

// ByID matches the document with the given identifier.
func ByID(id ID) Eq {
	return Eq{Field: IDField, Value: id}
}

// Contains is a case-insensitive literal substring match on a string field.
// An empty Term places no constraint, even on documents lacking Field.
type Contains struct {
	Field string
	Term  string
}

func (f Contains) Matches(doc Document) bool {
	if f.Term == "" {
		return true
	}
	v, ok := doc[f.Field].(string)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(v), strings.ToLower(f.Term))
}

// And matches when every clause matches. An empty And matches everything.
type And []Filter

func (f And) Matches(doc Document) bool {
	for _, clause := range f {
		if !clause.Matches(doc) {
			return false
		}
	}
	return true
}

// Or matches when any clause matches. An empty Or matches nothing.
type Or []Filter

func (f Or) Matches(doc Document) bool {
	for _, clause := range f {
		if clause.Matches(doc) {
			return true
		}
	}
	return false
}
