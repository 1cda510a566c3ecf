//go:build tools

package tools

// Tool dependencies pinned in go.mod: oapi-codegen regenerates internal/api
// from api/openapi.yaml and goose manages migrations from the command line.

import (
	_ "github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen"
	_ "github.com/pressly/goose/v3/cmd/goose"
)
