package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/universe-backend/pkg/docstore"
	pkgerrors "github.com/angelmondragon/universe-backend/pkg/errors"
)

const (
	opList   = "list"
	opCreate = "create"
	opDelete = "delete"
)

// ListParams carries the optional search terms. nil means the parameter was
// not supplied; an empty string is a real (match-all) term.
type ListParams struct {
	Query    *string
	Location *string
	Subject  *string
}

// PayloadDecoder fills dest from the request body and validates it.
type PayloadDecoder func(dest any) error

// Service is the dispatch core behind the content routes.
type Service interface {
	List(ctx context.Context, endpoint string, params ListParams) ([]docstore.WireRecord, error)
	Create(ctx context.Context, endpoint string, decode PayloadDecoder) (docstore.WireRecord, error)
	Delete(ctx context.Context, endpoint, id string) error
}

type operationRecorder interface {
	IncOperation(endpoint, op string, err error)
}

// ServiceParams bundles the dependencies for the content service. Store may
// be nil when no database is configured; every operation on a known endpoint
// then fails with CodeUnavailable.
type ServiceParams struct {
	Store   docstore.Store
	Metrics operationRecorder
}

type service struct {
	store   docstore.Store
	metrics operationRecorder
	now     func() time.Time
}

func NewService(params ServiceParams) Service {
	return &service{
		store:   params.Store,
		metrics: params.Metrics,
		now:     time.Now,
	}
}

func (s *service) List(ctx context.Context, endpoint string, params ListParams) ([]docstore.WireRecord, error) {
	kind, err := ParseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	records, err := s.list(ctx, kind, params)
	s.record(kind, opList, err)
	return records, err
}

func (s *service) list(ctx context.Context, kind Kind, params ListParams) ([]docstore.WireRecord, error) {
	if s.store == nil {
		return nil, unavailable(nil)
	}
	subject := params.Subject
	if !kind.SupportsSubject() {
		subject = nil
	}

	docs, err := s.store.Find(ctx, kind.Collection(), BuildFilter(params.Query, params.Location, subject), kind.DefaultSort())
	if err != nil {
		return nil, storeError(err, "list "+kind.Endpoint())
	}
	return docstore.SerializeAll(docs), nil
}

func (s *service) Create(ctx context.Context, endpoint string, decode PayloadDecoder) (docstore.WireRecord, error) {
	kind, err := ParseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	record, err := s.create(ctx, kind, decode)
	s.record(kind, opCreate, err)
	return record, err
}

func (s *service) create(ctx context.Context, kind Kind, decode PayloadDecoder) (docstore.WireRecord, error) {
	if s.store == nil {
		return nil, unavailable(nil)
	}

	if decode == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request body required")
	}
	var payload Payload
	if err := decode(&payload); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body")
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	doc := payload.Document()
	now := s.now().UTC()
	doc[docstore.FieldCreatedAt] = now
	doc[docstore.FieldUpdatedAt] = now

	id, err := s.store.InsertOne(ctx, kind.Collection(), doc)
	if err != nil {
		return nil, storeError(err, "insert "+kind.Endpoint())
	}

	// Read back what was stored rather than echoing the payload.
	stored, err := s.store.FindOne(ctx, kind.Collection(), docstore.ByID(id))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("created %s record %s not found", kind.Endpoint(), id.Hex()))
		}
		return nil, storeError(err, "reload "+kind.Endpoint())
	}
	return docstore.Serialize(stored), nil
}

func (s *service) Delete(ctx context.Context, endpoint, id string) error {
	kind, err := ParseEndpoint(endpoint)
	if err != nil {
		return err
	}
	err = s.delete(ctx, kind, id)
	s.record(kind, opDelete, err)
	return err
}

func (s *service) delete(ctx context.Context, kind Kind, rawID string) error {
	if s.store == nil {
		return unavailable(nil)
	}
	id, err := docstore.ParseID(rawID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Invalid id format")
	}

	deleted, err := s.store.DeleteOne(ctx, kind.Collection(), docstore.ByID(id))
	if err != nil {
		return storeError(err, "delete "+kind.Endpoint())
	}
	if deleted == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Item not found")
	}
	return nil
}

func (s *service) record(kind Kind, op string, err error) {
	if s.metrics != nil {
		s.metrics.IncOperation(kind.Endpoint(), op, err)
	}
}

func unavailable(cause error) error {
	return pkgerrors.Wrap(pkgerrors.CodeUnavailable, cause, "database not configured")
}

func storeError(err error, message string) error {
	if errors.Is(err, docstore.ErrUnavailable) {
		return unavailable(err)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, message)
}
