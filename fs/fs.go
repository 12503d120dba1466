// Package appfs exposes this repo's embedded assets (database migrations).
package appfs

import "embed"

//go:embed migrations
var FS embed.FS
