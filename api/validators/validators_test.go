package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	pkgerrors "github.com/grovechain/foodtrace-backend/pkg/errors"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required"`
	Limit int    `json:"limit" validate:"min=1,max=100"`
}

func TestDecodeJSONBody(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Apples","limit":10}`))
		var dest samplePayload
		if err := DecodeJSONBody(r, &dest); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if dest.Name != "Apples" {
			t.Fatalf("unexpected name %q", dest.Name)
		}
	})

	t.Run("malformedJSON", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		var dest samplePayload
		err := DecodeJSONBody(r, &dest)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("unknownField", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","limit":1,"extra":true}`))
		var dest samplePayload
		if err := DecodeJSONBody(r, &dest); err == nil {
			t.Fatal("expected unknown fields to be rejected")
		}
	})

	t.Run("failedRules", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"limit":500}`))
		var dest samplePayload
		err := DecodeJSONBody(r, &dest)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
		details, ok := typed.Details().(map[string]string)
		if !ok {
			t.Fatalf("expected per-field details, got %T", typed.Details())
		}
		if details["name"] != "is required" {
			t.Fatalf("unexpected name message %q", details["name"])
		}
	})
}

func TestParseQueryInt(t *testing.T) {
	t.Run("defaultWhenAbsent", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/?other=1", nil)
		got, err := ParseQueryInt(r, "page", 1, 1, 1000)
		if err != nil || got != 1 {
			t.Fatalf("expected default 1, got %d err %v", got, err)
		}
	})

	t.Run("parsesValue", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/?limit=25", nil)
		got, err := ParseQueryInt(r, "limit", 10, 1, 100)
		if err != nil || got != 25 {
			t.Fatalf("expected 25, got %d err %v", got, err)
		}
	})

	t.Run("rejectsNonNumeric", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/?page=abc", nil)
		if _, err := ParseQueryInt(r, "page", 1, 1, 1000); err == nil {
			t.Fatal("expected non-numeric input to be rejected")
		}
	})

	t.Run("rejectsNegative", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/?page=-3", nil)
		if _, err := ParseQueryInt(r, "page", 1, 1, 1000); err == nil {
			t.Fatal("expected negative input to be rejected")
		}
	})
}

func TestParseIDParam(t *testing.T) {
	withParam := func(value string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/products/"+value, nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("productId", value)
		return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
	}

	id := uuid.New()
	got, err := ParseIDParam(withParam(id.String()), "productId")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != id {
		t.Fatalf("expected %s, got %s", id, got)
	}

	if _, err := ParseIDParam(withParam("not-a-uuid"), "productId"); err == nil {
		t.Fatal("expected malformed id to be rejected")
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello  ", 0); got != "hello" {
		t.Fatalf("unexpected trim result %q", got)
	}
	if got := SanitizeString("abcdef", 3); got != "abc" {
		t.Fatalf("unexpected truncation %q", got)
	}
}
