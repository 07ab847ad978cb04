package content

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/universe-backend/pkg/docstore"
	"github.com/angelmondragon/universe-backend/pkg/docstore/sqlstore"
	pkgerrors "github.com/angelmondragon/universe-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonPayload(body string) PayloadDecoder {
	return func(dest any) error {
		return json.Unmarshal([]byte(body), dest)
	}
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func newTestService(t *testing.T) (*service, *sqlstore.Store) {
	t.Helper()
	store, err := sqlstore.NewInMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	clock := &testClock{now: time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)}
	svc := NewService(ServiceParams{Store: store}).(*service)
	svc.now = clock.Now
	return svc, store
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	assert.Equal(t, code, typed.Code())
}

func TestCreateMarketExample(t *testing.T) {
	svc, _ := newTestService(t)

	record, err := svc.Create(context.Background(), "market", jsonPayload(`{"title":"Desk lamp","price":10}`))
	require.NoError(t, err)

	assert.IsType(t, "", record["id"])
	assert.Equal(t, "Desk lamp", record["title"])
	assert.EqualValues(t, 10, record["price"])
	assert.Equal(t, "2024-04-01T10:00:01", record["created_at"])
	assert.Equal(t, record["created_at"], record["updated_at"])
	assert.NotContains(t, record, "description")
	assert.NotContains(t, record, "_id")
}

func TestCreateThenListRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "resources", jsonPayload(`{
		"title":"Organic chemistry notes",
		"description":"Full semester",
		"owner_id":"u1",
		"owner_name":"Ana",
		"location":"Science building",
		"tags":["chem","notes"],
		"subject":"Chemistry",
		"url":"https://example.edu/notes.pdf"
	}`))
	require.NoError(t, err)

	listed, err := svc.List(ctx, "resources", ListParams{})
	require.NoError(t, err)
	require.Len(t, listed, 1)

	got := listed[0]
	assert.Equal(t, created["id"], got["id"])
	for key, want := range map[string]string{
		"title": "Organic chemistry notes", "description": "Full semester", "owner_id": "u1",
		"owner_name": "Ana", "location": "Science building", "subject": "Chemistry",
		"url": "https://example.edu/notes.pdf",
	} {
		assert.Equal(t, want, got[key], key)
	}
	assert.Len(t, got["tags"], 2)
}

func TestListDoesNotLeakAcrossCollections(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	for _, kind := range Kinds() {
		_, err := svc.Create(ctx, kind.Endpoint(), jsonPayload(`{"title":"`+kind.Endpoint()+` item"}`))
		require.NoError(t, err)
	}
	_, err := store.InsertOne(ctx, "user", docstore.Document{"title": "secret user"})
	require.NoError(t, err)

	for _, kind := range Kinds() {
		listed, err := svc.List(ctx, kind.Endpoint(), ListParams{})
		require.NoError(t, err)
		require.Len(t, listed, 1, kind.Endpoint())
		assert.Equal(t, kind.Endpoint()+" item", listed[0]["title"])
	}

	_, err = svc.List(ctx, "user", ListParams{})
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestListOrdering(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, "clubs", jsonPayload(`{"title":"`+title+`"}`))
		require.NoError(t, err)
	}
	clubs, err := svc.List(ctx, "clubs", ListParams{})
	require.NoError(t, err)
	require.Len(t, clubs, 3)
	assert.Equal(t, []any{"third", "second", "first"}, []any{clubs[0]["title"], clubs[1]["title"], clubs[2]["title"]})

	events := []string{
		`{"title":"late","start_time":"2024-06-03T10:00:00"}`,
		`{"title":"early","start_time":"2024-06-01T10:00:00"}`,
		`{"title":"middle","start_time":"2024-06-02T10:00:00"}`,
	}
	for _, body := range events {
		_, err := svc.Create(ctx, "events", jsonPayload(body))
		require.NoError(t, err)
	}
	listed, err := svc.List(ctx, "events", ListParams{})
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "early", listed[0]["title"])
	assert.Equal(t, "middle", listed[1]["title"])
	assert.Equal(t, "late", listed[2]["title"])
	assert.Equal(t, "2024-06-01T10:00:00", listed[0]["start_time"])
}

func TestListFilters(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	payloads := []string{
		`{"title":"Calculus study group","location":"Main Library","subject":"Math"}`,
		`{"title":"Physics lab prep","description":"bring a calculator","location":"Lab 3","subject":"Physics"}`,
		`{"title":"Quiet corner"}`,
	}
	for _, body := range payloads {
		_, err := svc.Create(ctx, "beacons", jsonPayload(body))
		require.NoError(t, err)
	}

	listed, err := svc.List(ctx, "beacons", ListParams{Location: strPtr("")})
	require.NoError(t, err)
	assert.Len(t, listed, 3, "empty location must match every beacon")

	listed, err = svc.List(ctx, "beacons", ListParams{Query: strPtr("CALC")})
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	listed, err = svc.List(ctx, "beacons", ListParams{Subject: strPtr("phys")})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Physics lab prep", listed[0]["title"])

	listed, err = svc.List(ctx, "beacons", ListParams{Location: strPtr("library"), Query: strPtr("physics")})
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestListIgnoresSubjectForKindsWithoutIt(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "market", jsonPayload(`{"title":"Bike","price":50}`))
	require.NoError(t, err)

	listed, err := svc.List(ctx, "market", ListParams{Subject: strPtr("anything")})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestListEmptyCollectionReturnsEmptySlice(t *testing.T) {
	svc, _ := newTestService(t)
	listed, err := svc.List(context.Background(), "tutors", ListParams{})
	require.NoError(t, err)
	assert.NotNil(t, listed)
	assert.Empty(t, listed)
}

func TestDeleteLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "lostfound", jsonPayload(`{"title":"Blue umbrella"}`))
	require.NoError(t, err)
	assert.NotContains(t, created, "status")
	id := created["id"].(string)

	requireCode(t, svc.Delete(ctx, "market", id), pkgerrors.CodeNotFound)

	require.NoError(t, svc.Delete(ctx, "lostfound", id))

	listed, err := svc.List(ctx, "lostfound", ListParams{})
	require.NoError(t, err)
	assert.Empty(t, listed)

	requireCode(t, svc.Delete(ctx, "lostfound", id), pkgerrors.CodeNotFound)
}

func TestDeleteRejectsMalformedID(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.Delete(context.Background(), "clubs", "not-an-id")
	requireCode(t, err, pkgerrors.CodeValidation)
	assert.ErrorIs(t, err, docstore.ErrInvalidID)
}

func TestUnknownEndpointIsNotFound(t *testing.T) {
	svc := NewService(ServiceParams{})
	ctx := context.Background()

	_, err := svc.List(ctx, "secrets", ListParams{})
	requireCode(t, err, pkgerrors.CodeNotFound)
	_, err = svc.Create(ctx, "secrets", jsonPayload(`{"title":"x"}`))
	requireCode(t, err, pkgerrors.CodeNotFound)
	requireCode(t, svc.Delete(ctx, "secrets", docstore.NewID().Hex()), pkgerrors.CodeNotFound)
}

func TestMissingStoreIsUnavailable(t *testing.T) {
	svc := NewService(ServiceParams{})
	ctx := context.Background()

	_, err := svc.List(ctx, "clubs", ListParams{})
	requireCode(t, err, pkgerrors.CodeUnavailable)
	_, err = svc.Create(ctx, "clubs", jsonPayload(`{"title":"x"}`))
	requireCode(t, err, pkgerrors.CodeUnavailable)
	requireCode(t, svc.Delete(ctx, "clubs", "bogus"), pkgerrors.CodeUnavailable)
}

func TestCreateRejectsBadPayload(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(context.Background(), "events", jsonPayload(`{"title":"x","start_time":"soon"}`))
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Create(context.Background(), "events", nil)
	requireCode(t, err, pkgerrors.CodeValidation)

	typedErr := pkgerrors.New(pkgerrors.CodeValidation, "validation failed")
	_, err = svc.Create(context.Background(), "events", func(any) error { return typedErr })
	assert.Same(t, typedErr, err)
}

func TestCreateStoresSharedFieldsOnEveryKind(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "events", jsonPayload(`{"title":"Gig","price":5}`))
	require.NoError(t, err)
	assert.EqualValues(t, 5, created["price"])

	created, err = svc.Create(ctx, "market", jsonPayload(`{"title":"Desk lamp","subject":"furniture"}`))
	require.NoError(t, err)
	assert.Equal(t, "furniture", created["subject"])

	created, err = svc.Create(ctx, "lostfound", jsonPayload(`{"title":"Keys"}`))
	require.NoError(t, err)
	assert.NotContains(t, created, "status")
}

func TestCreateTitlePresence(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "clubs", jsonPayload(`{"title":""}`))
	require.NoError(t, err)
	assert.Equal(t, "", created["title"])

	_, err = svc.Create(ctx, "clubs", jsonPayload(`{"description":"no title"}`))
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Create(ctx, "clubs", jsonPayload(`{"title":null}`))
	requireCode(t, err, pkgerrors.CodeValidation)
}

// vanishingStore loses every record between insert and re-read.
type vanishingStore struct {
	docstore.Store
}

func (vanishingStore) InsertOne(context.Context, string, docstore.Document) (docstore.ID, error) {
	return docstore.NewID(), nil
}

func (vanishingStore) FindOne(context.Context, string, docstore.Filter) (docstore.Document, error) {
	return nil, docstore.ErrNotFound
}

func TestCreateRereadMissIsInternal(t *testing.T) {
	svc := NewService(ServiceParams{Store: vanishingStore{}})
	_, err := svc.Create(context.Background(), "clubs", jsonPayload(`{"title":"Chess"}`))
	requireCode(t, err, pkgerrors.CodeInternal)
}

type failingStore struct {
	docstore.Store
	err error
}

func (f failingStore) Find(context.Context, string, docstore.Filter, docstore.Sort) ([]docstore.Document, error) {
	return nil, f.err
}

func TestStoreErrorsAreClassified(t *testing.T) {
	ctx := context.Background()

	svc := NewService(ServiceParams{Store: failingStore{err: errors.New("cursor died")}})
	_, err := svc.List(ctx, "clubs", ListParams{})
	requireCode(t, err, pkgerrors.CodeInternal)

	svc = NewService(ServiceParams{Store: failingStore{err: docstore.ErrUnavailable}})
	_, err = svc.List(ctx, "clubs", ListParams{})
	requireCode(t, err, pkgerrors.CodeUnavailable)
}

type recordedOp struct {
	endpoint, op string
	failed       bool
}

type stubRecorder struct {
	ops []recordedOp
}

func (s *stubRecorder) IncOperation(endpoint, op string, err error) {
	s.ops = append(s.ops, recordedOp{endpoint: endpoint, op: op, failed: err != nil})
}

func TestOperationsAreRecorded(t *testing.T) {
	store, err := sqlstore.NewInMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	rec := &stubRecorder{}
	svc := NewService(ServiceParams{Store: store, Metrics: rec})
	ctx := context.Background()

	_, err = svc.Create(ctx, "clubs", jsonPayload(`{"title":"Chess"}`))
	require.NoError(t, err)
	_, err = svc.List(ctx, "clubs", ListParams{})
	require.NoError(t, err)
	_ = svc.Delete(ctx, "clubs", docstore.NewID().Hex())
	_, _ = svc.List(ctx, "unknown", ListParams{})

	assert.Equal(t, []recordedOp{
		{endpoint: "clubs", op: "create"},
		{endpoint: "clubs", op: "list"},
		{endpoint: "clubs", op: "delete", failed: true},
	}, rec.ops)
}
