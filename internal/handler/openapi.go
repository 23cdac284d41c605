package handler

import (
	"net/http"

	"github.com/pkordes/nyc-taxi/spec"
)

// OpenAPI serves the embedded API description at GET /openapi.yaml.
func OpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}
