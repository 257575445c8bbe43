// Package migrations embeds the schema files for the local cache (sqlite/)
// and the remote store (postgres/).
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
