// Package api ships the OpenAPI description of the HTTP surface inside the binary.
package api

import _ "embed"

//go:embed openapi.yaml
var OpenAPI []byte
