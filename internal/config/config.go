// Package config supplies invocation defaults from the environment. A
// .env file in the working directory is honored, then SGREP_* variables;
// command-line flags override everything here.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults are the environment-derived settings the CLI starts from.
type Defaults struct {
	Color    bool
	Column   bool
	Group    bool
	Workers  int
	LangFile string
}

// Load reads the environment. A missing .env file is not an error.
func Load() Defaults {
	_ = godotenv.Load()

	d := Defaults{
		Color:   !boolEnv("SGREP_NOCOLOR"),
		Column:  boolEnv("SGREP_COLUMN"),
		Group:   !boolEnv("SGREP_NOGROUP"),
		Workers: 1,
	}

	if n, err := strconv.Atoi(os.Getenv("SGREP_WORKERS")); err == nil && n > 0 {
		d.Workers = n
	}

	d.LangFile = os.Getenv("SGREP_LANG_FILE")
	if d.LangFile == "" {
		d.LangFile = discoverLangFile()
	}
	return d
}

// discoverLangFile looks for a language definitions file in the standard
// spots: ./sgrep.toml, then the user config directory.
func discoverLangFile() string {
	if _, err := os.Stat("sgrep.toml"); err == nil {
		return "sgrep.toml"
	}
	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, "sgrep", "languages.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func boolEnv(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
