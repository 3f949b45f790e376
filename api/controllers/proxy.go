package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/invisimart/storefront-web/pkg/logger"
)

// proxyTransport is the slice of the catalog client the relay needs.
type proxyTransport interface {
	BaseURL() *url.URL
	HTTPClient() *http.Client
}

// Proxy relays browser requests to the upstream API, preserving method, path
// remainder, and query string. It performs no payload transformation. The
// response contract is the raw browser one, not the API envelope:
//   - JSON upstream bodies pass through with the upstream status code;
//   - non-JSON bodies are wrapped as {"error": <text>} with the same status;
//   - transport failures yield {"error": <message>} at HTTP 500.
func Proxy(upstream proxyTransport, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := chi.URLParam(r, "*")
		target := strings.TrimRight(upstream.BaseURL().String(), "/") + "/" + path
		if raw := r.URL.RawQuery; raw != "" && r.Method == http.MethodGet {
			target += "?" + raw
		}

		var body io.Reader
		if r.Method == http.MethodPost {
			payload, err := io.ReadAll(r.Body)
			if err != nil {
				writeProxyError(w, http.StatusInternalServerError, "Failed to post to API")
				return
			}
			if !json.Valid(payload) {
				writeProxyError(w, http.StatusBadRequest, "Request body must be JSON")
				return
			}
			body = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(r.Context(), r.Method, target, body)
		if err != nil {
			writeProxyError(w, http.StatusInternalServerError, proxyFailureMessage(r.Method))
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := upstream.HTTPClient().Do(req)
		if err != nil {
			if logg != nil {
				logg.Error(logg.WithField(r.Context(), "target", target), "proxy request failed", err)
			}
			writeProxyError(w, http.StatusInternalServerError, proxyFailureMessage(r.Method))
			return
		}
		defer resp.Body.Close()

		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			writeProxyError(w, http.StatusInternalServerError, proxyFailureMessage(r.Method))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
			_, _ = w.Write(payload)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"error": strings.TrimSpace(string(payload))})
	}
}

func proxyFailureMessage(method string) string {
	if method == http.MethodPost {
		return "Failed to post to API"
	}
	return "Failed to fetch from API"
}

func writeProxyError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
