package webui

import (
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// WebUI serves the catalog debug pages.
type WebUI struct {
	Logger *slog.Logger
}

func New(logger *slog.Logger) *WebUI {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebUI{Logger: logger}
}

func (webUI *WebUI) SetWebUIRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/debug/", http.HandlerFunc(webUI.debugIndexHandler))
}
