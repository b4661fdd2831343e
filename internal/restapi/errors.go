package restapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"askdata.insights.org/internal/logging"
	"askdata.insights.org/internal/models"
	"askdata.insights.org/internal/query"
)

type statusResponse struct {
	Code        int    `json:"code"`
	CurrentTime int64  `json:"currentTime"`
	Text        string `json:"text"`
	Version     int    `json:"version"`
}

func (api *RestAPI) writeJSON(w http.ResponseWriter, status int, v interface{}, what string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.LogError(api.Logger, "failed to encode "+what, err,
			slog.String("component", "http_server"))
	}
}

// invalidAPIKeyResponse sends a 401 Unauthorized response with the required format
// for invalid API key errors
func (api *RestAPI) invalidAPIKeyResponse(w http.ResponseWriter, r *http.Request) {
	api.writeJSON(w, http.StatusUnauthorized, statusResponse{
		Code:        http.StatusUnauthorized,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        "permission denied",
		Version:     1,
	}, "invalid API key response")
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(api.Logger, "request failed", err,
		slog.String("component", "http_server"),
		slog.String("path", r.URL.Path))

	api.writeJSON(w, http.StatusInternalServerError, statusResponse{
		Code:        http.StatusInternalServerError,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        "internal server error",
		Version:     1,
	}, "server error response")
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	response := struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}{
		FieldErrors: fieldErrors,
	}

	api.writeJSON(w, http.StatusBadRequest, response, "validation error response")
}

type queryError struct {
	FieldErrors map[string][]string `json:"fieldErrors"`
	Template    query.TemplateID    `json:"template,omitempty"`
	Suggestions []string            `json:"suggestions,omitempty"`
	Available   []string            `json:"availableIndicators,omitempty"`
	Closest     []string            `json:"closestIndicators,omitempty"`
}

// queryErrorResponse reports a query the processor could not use. The
// message under fieldErrors.q is the text shown to the user.
func (api *RestAPI) queryErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	response := queryError{
		FieldErrors: map[string][]string{"q": {query.UserMessage(err)}},
	}

	var noMatch *query.NoMatchError
	var unresolved *query.UnresolvedEntityError
	switch {
	case errors.As(err, &noMatch):
		response.Suggestions = noMatch.Suggestions
	case errors.As(err, &unresolved):
		response.Template = unresolved.Template
		response.Available = unresolved.Available
		response.Closest = unresolved.Closest
	}

	api.writeJSON(w, http.StatusBadRequest, response, "query error response")
}

// conflictResponse reports a session submission replaced by a newer one.
func (api *RestAPI) conflictResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.writeJSON(w, http.StatusConflict, statusResponse{
		Code:        http.StatusConflict,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        query.UserMessage(err),
		Version:     2,
	}, "conflict response")
}
