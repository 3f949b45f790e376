package validators

import (
	"net/http"
	"strconv"

	pkgerrors "github.com/invisimart/storefront-web/pkg/errors"
)

// QueryInt parses an optional integer query parameter, returning fallback
// when absent.
func QueryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, name+" must be an integer")
	}
	return value, nil
}

// QueryOneOf parses an optional enum query parameter against allowed values.
func QueryOneOf(r *http.Request, name string, allowed ...string) (string, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return "", nil
	}
	for _, candidate := range allowed {
		if raw == candidate {
			return raw, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, name+" has an unsupported value")
}
