package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays Config with values from AUTHKEEP_* environment
// variables (see the env tags on Config). Unset variables leave the current
// values in place; an unparseable value panics, matching the JSON loader.
func parseEnv(cfg *Config) {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(err)
	}
}
