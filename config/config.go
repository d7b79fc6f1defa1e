package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "FPSCORE"

// Settings are the process-level options of the range sandbox. Gameplay
// tuning lives in the prefab specs, not here.
type Settings struct {
	LogLevel   string `mapstructure:"log_level"`
	LogConsole bool   `mapstructure:"log_console"`

	LoadoutFile string `mapstructure:"loadout_file"`
	RangeFile   string `mapstructure:"range_file"`
	PrefabDir   string `mapstructure:"prefab_dir"`

	// Watch enables hot reload of the prefab directory.
	Watch    bool `mapstructure:"watch"`
	TickRate int  `mapstructure:"tick_rate"`
}

// Tick is the duration of one simulation frame.
func (s Settings) Tick() time.Duration {
	if s.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(s.TickRate)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_console", true)
	v.SetDefault("loadout_file", "soldier.yaml")
	v.SetDefault("range_file", "range.yaml")
	v.SetDefault("prefab_dir", "prefabs")
	v.SetDefault("watch", true)
	v.SetDefault("tick_rate", 60)
}

// Load reads settings from the YAML file at path, applies FPSCORE_* env
// overrides and fills the rest from defaults. An empty path skips the file.
func Load(path string) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := s.validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) validate() error {
	switch {
	case s.TickRate < 0:
		return errors.New("config: tick_rate must not be negative")
	case s.LoadoutFile == "":
		return errors.New("config: loadout_file is required")
	case s.RangeFile == "":
		return errors.New("config: range_file is required")
	}
	return nil
}
