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

	pkgerrors "github.com/vendaflow/backoffice/pkg/errors"
	"github.com/vendaflow/backoffice/pkg/logger"
	"github.com/vendaflow/backoffice/pkg/types"
)

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, map[string]string{"hello": "world"})

	if got := w.Code; got != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", got)
	}

	var body types.Envelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if !body.Success {
		t.Fatal("expected success flag")
	}
	if body.Data.(map[string]any)["hello"] != "world" {
		t.Fatalf("unexpected payload %v", body.Data)
	}
	if body.Error != "" {
		t.Fatalf("unexpected error %q", body.Error)
	}
}

func TestWriteMessage(t *testing.T) {
	w := httptest.NewRecorder()
	WriteMessage(w, "logout realizado")

	var raw map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if raw["message"] != "logout realizado" || raw["success"] != true {
		t.Fatalf("unexpected body %v", raw)
	}
	if _, ok := raw["data"]; ok {
		t.Fatal("data must be omitted")
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

	var body types.Envelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if body.Success {
		t.Fatal("expected success=false")
	}
	if body.Code != string(pkgerrors.CodeValidation) || body.Error != "bad input" {
		t.Fatalf("unexpected error payload %+v", body)
	}
	if body.Details == nil {
		t.Fatalf("expected details in public payload")
	}
}

func TestWriteErrorDefaultsToInternalForUntrustedErrors(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: &buf, Format: "json"})

	w := httptest.NewRecorder()
	WriteError(context.Background(), logg, w, errors.New("boom"))

	if got := w.Code; got != http.StatusInternalServerError {
		t.Fatalf("expected status 500 but got %d", got)
	}

	var body types.Envelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if body.Code != string(pkgerrors.CodeInternal) {
		t.Fatalf("unexpected code %s", body.Code)
	}
	if body.Error != "internal server error" {
		t.Fatalf("internal causes must not leak, got %q", body.Error)
	}
	if body.Details != nil {
		t.Fatalf("details should be omitted for internal errors")
	}
	if !strings.Contains(buf.String(), "request.error") {
		t.Fatalf("expected error log, got %s", buf.String())
	}
}
