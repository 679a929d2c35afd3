package config

import (
	"encoding/json"
	"os"

	"github.com/mpavlovs/authkeep/internal/flagx"
	"github.com/mpavlovs/authkeep/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "15s"
// or as integer nanoseconds. Parsed values are copied into the runtime
// Config; fields absent from the file leave the current value in place.
type JsonConfig struct {
	ServerBaseURL        string         `json:"server_base_url"`
	RequestTimeout       timex.Duration `json:"request_timeout"`
	RefreshCheckInterval timex.Duration `json:"refresh_check_interval"`
	RefreshExpiryMargin  timex.Duration `json:"refresh_expiry_margin"`
	DatabasePath         string         `json:"database_path"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c or -config flags. When no file is given it returns immediately.
// Read or unmarshal errors panic; the caller may recover if desired.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RefreshCheckInterval.Duration != 0 {
		cfg.RefreshCheckInterval = jc.RefreshCheckInterval.Duration
	}
	if jc.RefreshExpiryMargin.Duration != 0 {
		cfg.RefreshExpiryMargin = jc.RefreshExpiryMargin.Duration
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
}
