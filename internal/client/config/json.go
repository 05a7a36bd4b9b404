package config

import (
	"encoding/json"
	"os"

	"github.com/zhenyuanliu98-svg/Vinobook/internal/flagx"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling.
type jsonConfig struct {
	ServerURL    string `json:"server_url"`
	DatabasePath string `json:"database_path"`
}

// parseJSON overlays Config with values loaded from the JSON file given via
// the -c/-config flags. Absent file path means no JSON is loaded. Only keys
// present in the file override the current values.
//
// Intended usage is: defaults -> parseJSON -> parseFlags, where later stages
// override earlier ones.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc jsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
}
