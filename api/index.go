package handler

import (
	"net/http"
	"roomdesk/config"
	"roomdesk/di"
	"roomdesk/shared/logger"
)

// Handler is the serverless entry point. It wires the full service on each
// cold start and delegates every request to the configured router.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	service := di.InitializeService()
	service.Handler().ServeHTTP(w, r)
}
