package responses

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/universe-backend/pkg/errors"
	"github.com/angelmondragon/universe-backend/pkg/logger"
	"github.com/angelmondragon/universe-backend/pkg/types"
	"github.com/rs/zerolog"
)

func TestWriteSuccessWritesRawBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, map[string]string{"hello": "world"})

	if got := w.Code; got != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", got)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["hello"] != "world" {
		t.Fatalf("unexpected payload %v", body)
	}
	if _, wrapped := body["data"]; wrapped {
		t.Fatalf("success bodies must not be wrapped")
	}
}

func TestWriteSuccessEmptyList(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, []map[string]any{})
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %q", w.Body.String())
	}
}

func TestWriteErrorMapsTypedError(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "bad input").
		WithDetails(map[string]string{"field": "demo"})
	WriteError(context.Background(), nil, w, err)

	if got := w.Code; got != http.StatusBadRequest {
		t.Fatalf("expected status 400 but got %d", got)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected code %s", body.Error.Code)
	}
	if body.Error.Message != "bad input" {
		t.Fatalf("unexpected message %s", body.Error.Message)
	}
	if body.Error.Details == nil {
		t.Fatalf("expected details in public payload")
	}
}

func TestWriteErrorStatuses(t *testing.T) {
	cases := []struct {
		code    pkgerrors.Code
		message string
		status  int
	}{
		{pkgerrors.CodeConflict, "Account already exists", http.StatusBadRequest},
		{pkgerrors.CodeUnauthorized, "Invalid credentials", http.StatusUnauthorized},
		{pkgerrors.CodeNotFound, "Item not found", http.StatusNotFound},
		{pkgerrors.CodeUnavailable, "database not configured", http.StatusInternalServerError},
		{pkgerrors.CodeRateLimit, "too many attempts", http.StatusTooManyRequests},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		WriteError(context.Background(), nil, w, pkgerrors.New(tc.code, tc.message))

		if w.Code != tc.status {
			t.Fatalf("%s: expected status %d, got %d", tc.code, tc.status, w.Code)
		}
		var body types.ErrorEnvelope
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Error.Message != tc.message {
			t.Fatalf("%s: expected message %q, got %q", tc.code, tc.message, body.Error.Message)
		}
	}
}

func TestWriteErrorDefaultsToInternalForUntrustedErrors(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.DebugLevel, Output: &buf})

	w := httptest.NewRecorder()
	WriteError(context.Background(), logg, w, errors.New("boom"))

	if got := w.Code; got != http.StatusInternalServerError {
		t.Fatalf("expected status 500 but got %d", got)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.Error.Message != "internal server error" {
		t.Fatalf("internal details must not leak, got %q", body.Error.Message)
	}
	if !strings.Contains(buf.String(), "request.error") || !strings.Contains(buf.String(), "boom") {
		t.Fatalf("expected error to be logged, got %s", buf.String())
	}
}
