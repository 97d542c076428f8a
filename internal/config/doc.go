// Package config loads polar's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/polar/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing or blank, use defaults
//
// # Default Values
//
//   - Data directory: ~/.local/share/polar
//   - Mirror backend: file (one JSON document per key under the data directory)
//   - Mirror key: hielo-polar-assets
//   - Log file: <data_dir>/polar.log
//   - Log level: info
//   - Remote table: assets
//
// # TOML Format
//
//	data_dir       = "~/.local/share/polar"
//	mirror_backend = "sqlite"
//	seed_file      = "~/polar/seed.json"
//	log_level      = "debug"
//
//	[remote]
//	url           = "https://abc.supabase.co"
//	api_key       = "..."
//	pull_seconds  = 30
//	pull_on_start = true
//
// The remote store is disabled unless remote.url is set. The API key may
// instead come from the POLAR_REMOTE_API_KEY environment variable, which
// takes precedence over the file.
//
// # Error Handling
//
// A missing file is not an error. An unreadable file, invalid TOML (reported
// as "parse config: ...") or an unknown mirror_backend or log_level is.
package config
