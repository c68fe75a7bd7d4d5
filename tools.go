//go:build tools

// Package tools pins the versions of the development binaries in go.mod:
// the linter, the goose CLI, the swag doc generator and mockery.
package tools

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "github.com/pressly/goose/v3/cmd/goose"
	_ "github.com/swaggo/swag/cmd/swag"
	_ "github.com/vektra/mockery/v2"
)
