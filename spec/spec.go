// Package spec embeds the OpenAPI specification for the NYC taxi trips API.
// It is served by the HTTP server at /openapi.yaml and is the source that
// internal/handler/gen is generated from.
package spec

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time.
// Serving it from the binary keeps the published API description and the running code in sync.
//
//go:embed openapi.yaml
var OpenAPI []byte
