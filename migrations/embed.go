// Package migrations carries the schema migration files, compiled into the
// binaries so deployments do not need the source tree on disk.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
