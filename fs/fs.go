package appfs

import "embed"

// FS embeds the database migrations so deployments are a single binary.
//go:embed migrations
var FS embed.FS
