package utils

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// PathParam returns the named route parameter with a trailing ".json" removed,
// so "/api/v1/kpi/poverty%20rate.json" yields "poverty rate".
func PathParam(r *http.Request, name string) string {
	value := httprouter.ParamsFromContext(r.Context()).ByName(name)
	return strings.TrimSuffix(value, ".json")
}

// QueryParam returns a trimmed query string value.
func QueryParam(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}
