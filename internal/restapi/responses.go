package restapi

import (
	"encoding/json"
	"net/http"

	"askdata.insights.org/internal/models"
)

func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	setJSONResponseType(&w)
	if response.Code != 0 && response.Code != http.StatusOK {
		w.WriteHeader(response.Code)
	}
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter, r *http.Request) {
	api.sendNotFoundText(w, r, "resource not found")
}

// sendNotFoundText is a 404 carrying a user-facing explanation.
func (api *RestAPI) sendNotFoundText(w http.ResponseWriter, r *http.Request, text string) {
	setJSONResponseType(&w)
	w.WriteHeader(http.StatusNotFound)

	response := models.ResponseModel{
		Code:        http.StatusNotFound,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        text,
		Version:     2,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
}

func setJSONResponseType(w *http.ResponseWriter) {
	(*w).Header().Set("Content-Type", "application/json")
}
