package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/universe-backend/internal/content"
	"github.com/angelmondragon/universe-backend/pkg/docstore"
	pkgerrors "github.com/angelmondragon/universe-backend/pkg/errors"
)

type stubContentService struct {
	records    []docstore.WireRecord
	created    docstore.WireRecord
	err        error
	lastParams content.ListParams
	lastID     string
	decoded    map[string]any
}

func (s *stubContentService) List(ctx context.Context, endpoint string, params content.ListParams) ([]docstore.WireRecord, error) {
	s.lastParams = params
	return s.records, s.err
}

func (s *stubContentService) Create(ctx context.Context, endpoint string, decode content.PayloadDecoder) (docstore.WireRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	var payload struct {
		Title string `json:"title" validate:"required"`
	}
	if err := decode(&payload); err != nil {
		return nil, err
	}
	s.decoded = map[string]any{"title": payload.Title}
	return s.created, nil
}

func (s *stubContentService) Delete(ctx context.Context, endpoint, id string) error {
	s.lastID = id
	return s.err
}

func TestContentListForwardsOptionalTerms(t *testing.T) {
	svc := &stubContentService{records: []docstore.WireRecord{{"id": "a", "title": "Calc"}}}
	handler := ContentList(svc, "beacons", nil)

	req := httptest.NewRequest(http.MethodGet, "/beacons?q=calc&location=", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastParams.Query == nil || *svc.lastParams.Query != "calc" {
		t.Fatalf("expected q=calc, got %v", svc.lastParams.Query)
	}
	if svc.lastParams.Location == nil || *svc.lastParams.Location != "" {
		t.Fatalf("expected empty location term, got %v", svc.lastParams.Location)
	}
	if svc.lastParams.Subject != nil {
		t.Fatalf("expected absent subject, got %v", *svc.lastParams.Subject)
	}

	var body []map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body) != 1 || body[0]["title"] != "Calc" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestContentListEmptyIsArray(t *testing.T) {
	svc := &stubContentService{records: []docstore.WireRecord{}}
	resp := httptest.NewRecorder()
	ContentList(svc, "clubs", nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/clubs", nil))

	if got := strings.TrimSpace(resp.Body.String()); got != "[]" {
		t.Fatalf("expected empty array, got %s", got)
	}
}

func TestContentCreateDecodesBody(t *testing.T) {
	svc := &stubContentService{created: docstore.WireRecord{"id": "abc", "title": "Bike"}}
	handler := ContentCreate(svc, "market", nil)

	req := httptest.NewRequest(http.MethodPost, "/market", strings.NewReader(`{"title":"Bike"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.decoded["title"] != "Bike" {
		t.Fatalf("payload not decoded: %v", svc.decoded)
	}
}

func TestContentCreateIgnoresUnknownFields(t *testing.T) {
	svc := &stubContentService{}
	handler := ContentCreate(svc, "market", nil)

	req := httptest.NewRequest(http.MethodPost, "/market", strings.NewReader(`{"title":"Bike","colour":"red"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.decoded["title"] != "Bike" {
		t.Fatalf("payload not decoded: %v", svc.decoded)
	}
}

func TestContentCreateRejectsMalformedBody(t *testing.T) {
	handler := ContentCreate(&stubContentService{}, "market", nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/market", strings.NewReader(`{"title":`)))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestContentCreateUnavailable(t *testing.T) {
	handler := ContentCreate(&stubContentService{err: pkgerrors.New(pkgerrors.CodeUnavailable, "database not configured")}, "market", nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/market", strings.NewReader(`{"title":"x"}`)))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
	if msg := errorMessage(t, resp); msg != "database not configured" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestContentDeleteUsesURLParam(t *testing.T) {
	svc := &stubContentService{}
	r := chi.NewRouter()
	r.Delete("/events/{"+IDParam+"}", ContentDelete(svc, "events", nil))

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/events/6630f0c2a1b2c3d4e5f60718", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastID != "6630f0c2a1b2c3d4e5f60718" {
		t.Fatalf("unexpected id %q", svc.lastID)
	}
	if got := strings.TrimSpace(resp.Body.String()); got != `{"success":true}` {
		t.Fatalf("unexpected body %s", got)
	}
}

func TestContentDeleteNotFound(t *testing.T) {
	svc := &stubContentService{err: pkgerrors.New(pkgerrors.CodeNotFound, "Item not found")}
	resp := httptest.NewRecorder()
	ContentDelete(svc, "events", nil).ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/events/x", nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	if msg := errorMessage(t, resp); msg != "Item not found" {
		t.Fatalf("unexpected message %q", msg)
	}
}
