package app

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// APIKeyHeader is accepted when the request has no key query parameter.
const APIKeyHeader = "X-API-Key"

// APIKey returns the caller's key from ?key= or the X-API-Key header.
func APIKey(r *http.Request) string {
	if key := r.URL.Query().Get("key"); key != "" {
		return key
	}
	return strings.TrimSpace(r.Header.Get(APIKeyHeader))
}

func (app *Application) RequestHasInvalidAPIKey(r *http.Request) bool {
	return app.IsInvalidAPIKey(APIKey(r))
}

func (app *Application) IsInvalidAPIKey(key string) bool {
	if key == "" {
		return true
	}

	valid := 0
	for _, candidate := range app.Config.ApiKeys {
		valid |= subtle.ConstantTimeCompare([]byte(key), []byte(candidate))
	}
	return valid == 0
}
