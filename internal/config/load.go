package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// CALMA_STORAGE_BACKEND or CALMA_LOG_LEVEL.
const EnvPrefix = "CALMA"

// Dir is calma's per-user directory, ~/.config/calma.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "calma"), nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("storage.backend", "sqlite")
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.redis_addr", "")
	v.SetDefault("storage.redis_db", 0)
	v.SetDefault("storage.redis_prefix", "calma:")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.dir", filepath.Join(dir, "logs"))
	v.SetDefault("log.console", false)

	v.SetDefault("insights.window_days", 7)

	v.SetDefault("helpline.phone", "8009112000")
	v.SetDefault("helpline.whatsapp", "525500000000")
	v.SetDefault("helpline.video_url", "https://www.youtube.com/watch?v=inpok4MKVLM")
	v.SetDefault("helpline.guide_url", "https://www.who.int/publications/i/item/9789240030787")
}

// Load reads configuration. With path empty it looks for config.yaml in
// ~/.config/calma and carries on without one; an explicit path must exist.
func Load(path string) (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every section's constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
