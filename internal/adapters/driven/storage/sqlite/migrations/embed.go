// Package migrations holds the chart database schema, applied in file
// name order on open.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
