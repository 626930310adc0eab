// Package migrations carries the SQL schema migrations applied by
// cmd/migrate and the integration tests.
package migrations

import "embed"

// FS holds every *.up.sql / *.down.sql pair in this directory.
//
//go:embed *.sql
var FS embed.FS
