package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/invisimart/storefront-web/pkg/errors"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Count int    `json:"count" validate:"gte=0"`
}

func TestDecodeJSONBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Ada","email":"ada@example.com","count":2}`))

	var payload samplePayload
	if err := DecodeJSONBody(req, &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Name != "Ada" || payload.Count != 2 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Ada","email":"ada@example.com","extra":true}`))

	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestDecodeJSONBodyFieldMessagesUseJSONNames(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"","email":"nope"}`))

	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	appErr := pkgerrors.As(err)
	if appErr == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := appErr.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field map, got %T", appErr.Details())
	}
	if details["name"] != "is required" {
		t.Fatalf("expected json tag names in details, got %v", details)
	}
	if details["email"] != "must be a valid email" {
		t.Fatalf("unexpected email message %q", details["email"])
	}
}

func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest("GET", "/?limit=10", nil)
	if got, err := QueryInt(req, "limit", 25); err != nil || got != 10 {
		t.Fatalf("QueryInt = %d, %v", got, err)
	}
	if got, err := QueryInt(req, "offset", 25); err != nil || got != 25 {
		t.Fatalf("absent param must fall back, got %d, %v", got, err)
	}

	bad := httptest.NewRequest("GET", "/?limit=ten", nil)
	if _, err := QueryInt(bad, "limit", 25); err == nil {
		t.Fatal("expected error for non-integer value")
	}
}

func TestQueryOneOf(t *testing.T) {
	req := httptest.NewRequest("GET", "/?filter=purchase", nil)
	if got, err := QueryOneOf(req, "filter", "all", "purchase", "restock"); err != nil || got != "purchase" {
		t.Fatalf("QueryOneOf = %q, %v", got, err)
	}

	absent := httptest.NewRequest("GET", "/", nil)
	if got, err := QueryOneOf(absent, "filter", "all"); err != nil || got != "" {
		t.Fatalf("absent param must be empty, got %q, %v", got, err)
	}

	bad := httptest.NewRequest("GET", "/?filter=refund", nil)
	if _, err := QueryOneOf(bad, "filter", "all", "purchase", "restock"); err == nil {
		t.Fatal("expected error for unsupported value")
	}
}
