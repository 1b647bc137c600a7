// Package api carries the OpenAPI document served under /docs.
package api

import _ "embed"

//go:embed openapi.json
var OpenAPI []byte
