// Package content implements list/create/delete over the public content
// collections.
package content

import (
	"github.com/angelmondragon/universe-backend/pkg/docstore"
	pkgerrors "github.com/angelmondragon/universe-backend/pkg/errors"
)

// Kind enumerates the content collections reachable over HTTP. Nothing
// outside this list can be addressed, whatever the store holds.
type Kind int

const (
	KindBeacon Kind = iota + 1
	KindResource
	KindTutor
	KindClub
	KindEvent
	KindLostfound
	KindMarket
)

var (
	newestFirst  = docstore.Sort{Field: docstore.FieldCreatedAt, Order: docstore.Descending}
	soonestFirst = docstore.Sort{Field: FieldStartTime, Order: docstore.Ascending}
)

type kindSpec struct {
	endpoint   string
	collection string
	subject    bool
	sort       docstore.Sort
}

var kindSpecs = map[Kind]kindSpec{
	KindBeacon:    {endpoint: "beacons", collection: "beacon", subject: true, sort: newestFirst},
	KindResource:  {endpoint: "resources", collection: "resource", subject: true, sort: newestFirst},
	KindTutor:     {endpoint: "tutors", collection: "tutor", subject: true, sort: newestFirst},
	KindClub:      {endpoint: "clubs", collection: "club", sort: newestFirst},
	KindEvent:     {endpoint: "events", collection: "event", sort: soonestFirst},
	KindLostfound: {endpoint: "lostfound", collection: "lostfound", subject: true, sort: newestFirst},
	KindMarket:    {endpoint: "market", collection: "market", sort: newestFirst},
}

var orderedKinds = []Kind{KindBeacon, KindResource, KindTutor, KindClub, KindEvent, KindLostfound, KindMarket}

var kindsByEndpoint = func() map[string]Kind {
	out := make(map[string]Kind, len(kindSpecs))
	for kind, spec := range kindSpecs {
		out[spec.endpoint] = kind
	}
	return out
}()

// ParseEndpoint resolves a public endpoint name. Unknown names are NotFound.
func ParseEndpoint(name string) (Kind, error) {
	if kind, ok := kindsByEndpoint[name]; ok {
		return kind, nil
	}
	return 0, pkgerrors.New(pkgerrors.CodeNotFound, "Unknown endpoint").
		WithDetails(map[string]any{"endpoint": name})
}

// Kinds lists every kind in a stable order.
func Kinds() []Kind {
	return append([]Kind(nil), orderedKinds...)
}

func (k Kind) IsValid() bool {
	_, ok := kindSpecs[k]
	return ok
}

// Endpoint is the public path segment.
func (k Kind) Endpoint() string { return kindSpecs[k].endpoint }

// Collection is the backing store collection.
func (k Kind) Collection() string { return kindSpecs[k].collection }

// SupportsSubject reports whether list requests honour the subject filter.
func (k Kind) SupportsSubject() bool { return kindSpecs[k].subject }

// DefaultSort is the list ordering: soonest start first for events, newest
// first for everything else.
func (k Kind) DefaultSort() docstore.Sort { return kindSpecs[k].sort }

func (k Kind) String() string {
	if spec, ok := kindSpecs[k]; ok {
		return spec.endpoint
	}
	return "unknown"
}
