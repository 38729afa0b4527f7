// Package spec embeds the OpenAPI document so the server can serve it at
// /openapi.yaml without relying on a filesystem path at runtime.
package spec

import _ "embed"

//go:embed openapi.yaml
var OpenAPI []byte
