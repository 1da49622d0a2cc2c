package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	pkgerrors "github.com/vendaflow/backoffice/pkg/errors"
)

type itemBody struct {
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"gte=0"`
}

type saleBody struct {
	PaymentMethod string     `json:"payment_method" validate:"required,oneof=dinheiro cartao pix credito"`
	Items         []itemBody `json:"items" validate:"required,min=1,dive"`
}

func TestDecodeJSONBodyValidatesNestedFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"payment_method":"pix","items":[{"quantity":0,"unit_price":"-1"}]}`))

	var body saleBody
	err := DecodeJSONBody(req, &body)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("unexpected details %T", typed.Details())
	}
	if details["items[0].quantity"] != "must be greater than 0" {
		t.Fatalf("unexpected details %v", details)
	}
	if _, ok := details["items[0].unit_price"]; !ok {
		t.Fatalf("expected unit_price failure, got %v", details)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"payment_method":"pix","items":[],"extra":1}`))
	var body saleBody
	if err := DecodeJSONBody(req, &body); pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseQueryInt(t *testing.T) {
	cases := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{query: "", want: 100},
		{query: "limit=5", want: 5},
		{query: "limit=0", wantErr: true},
		{query: "limit=201", wantErr: true},
		{query: "limit=abc", wantErr: true},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil)
		got, err := ParseQueryInt(req, "limit", 100, 1, 200)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tc.query)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("%q: got %d, %v", tc.query, got, err)
		}
	}
}

func TestParseQueryBool(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?unreadOnly=true", nil)
	if ok, err := ParseQueryBool(req, "unreadOnly"); err != nil || !ok {
		t.Fatalf("expected true, got %v %v", ok, err)
	}
	req = httptest.NewRequest(http.MethodGet, "/?unreadOnly=talvez", nil)
	if _, err := ParseQueryBool(req, "unreadOnly"); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseIDParam(t *testing.T) {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "42")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	id, err := ParseIDParam(req, "id")
	if err != nil || id != 42 {
		t.Fatalf("got %d %v", id, err)
	}

	rctx.URLParams = chi.RouteParams{}
	rctx.URLParams.Add("id", "-3")
	if _, err := ParseIDParam(req, "id"); err == nil {
		t.Fatal("expected error for negative id")
	}
}

func TestBearerToken(t *testing.T) {
	for in, want := range map[string]string{
		"Bearer abc":  "abc",
		"bearer  xyz": "xyz",
		"raw-token":   "raw-token",
		"":            "",
		"Bearer ":     "",
	} {
		if got := BearerToken(in); got != want {
			t.Fatalf("BearerToken(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  arroz  ", 3); got != "arr" {
		t.Fatalf("got %q", got)
	}
}

func TestSanitizeStringKeepsRunesWhole(t *testing.T) {
	// "Caf" + 2-byte "é": cutting at 4 bytes must drop the partial rune
	if got := SanitizeString("Café", 4); got != "Caf" {
		t.Fatalf("got %q", got)
	}
	if got := SanitizeString("Café", 5); got != "Café" {
		t.Fatalf("got %q", got)
	}
}
