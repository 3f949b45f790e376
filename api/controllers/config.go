package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/invisimart/storefront-web/pkg/logger"
)

type runtimeConfig struct {
	APIURL string `json:"apiUrl"`
}

// RuntimeConfig resolves the API base URL the browser should use. The URL
// points back at this service's proxy so the backend host never reaches the
// browser. Computed from the inbound request's headers; it cannot fail, and
// the browser-side fallback remains "{protocol}//{host}" of the current page.
func RuntimeConfig(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		proto := r.Header.Get("X-Forwarded-Proto")
		if proto == "" {
			proto = "http"
		}
		host := r.Host

		payload := runtimeConfig{APIURL: proto + "://" + host + "/api/proxy"}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(payload); err != nil && logg != nil {
			logg.Error(r.Context(), "failed to write config response", err)
		}
	}
}
