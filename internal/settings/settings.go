// Package settings resolves application settings from flags, TEAMDESK_*
// environment variables and defaults.
package settings

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"teamdesk/internal/config"
)

const envPrefix = "TEAMDESK"

// Setting keys and the persistent flags they are bound to.
const (
	KeyConfigDir = "config_dir"
	KeyLogFile   = "log_file"
	KeyLogLevel  = "log_level"
	KeyNoColor   = "no_color"
)

var flagNames = map[string]string{
	KeyConfigDir: "config-dir",
	KeyLogFile:   "log-file",
	KeyLogLevel:  "log-level",
	KeyNoColor:   "no-color",
}

// Settings holds resolved application settings
type Settings struct {
	ConfigDir string
	LogFile   string
	LogLevel  string
	NoColor   bool
}

// Load resolves settings. flags may be nil; flags that exist in the set are
// bound so an explicitly passed flag wins over the environment.
func Load(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyNoColor, false)

	if flags != nil {
		for key, name := range flagNames {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	s := &Settings{
		ConfigDir: v.GetString(KeyConfigDir),
		LogFile:   v.GetString(KeyLogFile),
		LogLevel:  v.GetString(KeyLogLevel),
		NoColor:   v.GetBool(KeyNoColor),
	}

	if s.ConfigDir == "" {
		dir, err := config.DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		s.ConfigDir = dir
	}
	if s.LogFile == "" {
		s.LogFile = filepath.Join(s.ConfigDir, "teamdesk.log")
	}

	return s, nil
}
