// Package config loads calma's settings from defaults, an optional YAML file
// and CALMA_* environment variables, in increasing order of precedence.
package config

// Config holds all application configuration.
type Config struct {
	Storage  Storage  `mapstructure:"storage"`
	Log      Log      `mapstructure:"log"`
	Insights Insights `mapstructure:"insights"`
	HelpLine HelpLine `mapstructure:"helpline"`
}

// Storage selects and configures the key-value backend.
type Storage struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=sqlite redis"`
	// Path of the SQLite database. Empty means ~/.config/calma/calma.db.
	Path        string `mapstructure:"path"`
	RedisAddr   string `mapstructure:"redis_addr" validate:"required_if=Backend redis"`
	RedisDB     int    `mapstructure:"redis_db" validate:"gte=0"`
	RedisPrefix string `mapstructure:"redis_prefix"`
}

type Log struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	// Dir holds calma.log. Empty disables the file log.
	Dir string `mapstructure:"dir"`
	// Console also logs to stderr. Never set for the TUI.
	Console bool `mapstructure:"console"`
}

type Insights struct {
	WindowDays int `mapstructure:"window_days" validate:"gte=1,lte=365"`
}

// HelpLine is the emergency resources shown on escalation.
type HelpLine struct {
	Phone    string `mapstructure:"phone" validate:"required,numeric"`
	WhatsApp string `mapstructure:"whatsapp" validate:"required,numeric"`
	VideoURL string `mapstructure:"video_url" validate:"omitempty,url"`
	GuideURL string `mapstructure:"guide_url" validate:"omitempty,url"`
}
