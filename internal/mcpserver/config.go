package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
)

// serverConfig holds all configurable MCP server defaults. Loaded once at
// startup from environment variables via loadConfig().
type serverConfig struct {
	// DefaultHelper overrides the helper-object name used when a
	// component's source doesn't carry its own discoverable helper (e.g.
	// a brand-new component with no prior revision comment to infer it
	// from). Empty means fall back to merge.MergeFiles's own default.
	DefaultHelper string

	// StartMarker and EndMarker override the default
	// "plasmic-managed-start"/"plasmic-managed-end" splice markers.
	StartMarker string
	EndMarker   string

	// ReportVerbose controls whether merge_component includes the full
	// Report (conflicts, renames) or just the summary counts.
	ReportVerbose bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from PLASMERGE_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		DefaultHelper: os.Getenv("PLASMERGE_HELPER"),
		StartMarker:   envString("PLASMERGE_MARKER_START", "plasmic-managed-start"),
		EndMarker:     envString("PLASMERGE_MARKER_END", "plasmic-managed-end"),
		ReportVerbose: envBool("PLASMERGE_REPORT_VERBOSE", true),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}
