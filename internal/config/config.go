// Package config loads portfolio settings from an optional YAML file with
// PORTFOLIO_* environment overrides. A .env file in the working directory
// is loaded into the environment first.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

const envPrefix = "PORTFOLIO_"

// Config is the top-level portfolio configuration, corresponding to
// portfolio.yaml.
type Config struct {
	Port         string         `koanf:"port"`
	Mode         string         `koanf:"mode"`
	DatabasePath string         `koanf:"database_path"`
	ContentPath  string         `koanf:"content_path"`
	ViewTTL      time.Duration  `koanf:"view_ttl"`
	SMTP         SMTPConfig     `koanf:"smtp"`
	Admin        AdminConfig    `koanf:"admin"`
	Nav          NavConfig      `koanf:"nav"`
	Carousel     CarouselConfig `koanf:"carousel"`
	TUI          TUIConfig      `koanf:"tui"`
}

// SMTPConfig holds the contact form mail relay.
type SMTPConfig struct {
	Host string `koanf:"host"`
	Port string `koanf:"port"`
	User string `koanf:"user"`
	Pass string `koanf:"pass"`
	To   string `koanf:"to"`
}

// Configured reports whether credentials are present.
func (s SMTPConfig) Configured() bool {
	return s.User != "" && s.Pass != ""
}

type AdminConfig struct {
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}

// NavConfig holds the section tracker thresholds in pixels.
type NavConfig struct {
	ScrolledAfter int `koanf:"scrolled_after"`
	BottomSlack   int `koanf:"bottom_slack"`
	LookAhead     int `koanf:"look_ahead"`
	PreTrigger    int `koanf:"pre_trigger"`
}

type CarouselConfig struct {
	TransitionDelay time.Duration `koanf:"transition_delay"`
	Breakpoint      int           `koanf:"breakpoint"`
	SkillsDelay     time.Duration `koanf:"skills_delay"`
}

// TUIConfig tunes the terminal rendition, where distances are lines and
// widths are columns.
type TUIConfig struct {
	Breakpoint   int           `koanf:"breakpoint"`
	Nav          NavConfig     `koanf:"nav"`
	TypeInterval time.Duration `koanf:"type_interval"`
}

// Default returns a Config with the development defaults.
func Default() *Config {
	return &Config{
		Port:         "8080",
		Mode:         "debug",
		DatabasePath: "data/portfolio.db",
		ViewTTL:      30 * time.Minute,
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: "587",
		},
		Admin: AdminConfig{
			Username: "admin",
			Password: "admin123",
		},
		Nav: NavConfig{
			ScrolledAfter: 50,
			BottomSlack:   100,
			LookAhead:     200,
			PreTrigger:    100,
		},
		Carousel: CarouselConfig{
			TransitionDelay: 150 * time.Millisecond,
			Breakpoint:      768,
			SkillsDelay:     200 * time.Millisecond,
		},
		TUI: TUIConfig{
			Breakpoint: 100,
			Nav: NavConfig{
				ScrolledAfter: 1,
				BottomSlack:   2,
				LookAhead:     4,
				PreTrigger:    2,
			},
			TypeInterval: 50 * time.Millisecond,
		},
	}
}

// Load reads .env, then the YAML file at path when it exists, then the
// PORTFOLIO_* environment. Nested keys use a double underscore, e.g.
// PORTFOLIO_SMTP__HOST.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "loading .env")
	}

	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "reading config %s", path)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "accessing config %s", path)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, "loading env overrides")
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshalling config")
	}

	// The plain variables predate the prefixed ones and stay supported.
	legacy := map[string]*string{
		"PORT":           &cfg.Port,
		"SMTP_HOST":      &cfg.SMTP.Host,
		"SMTP_PORT":      &cfg.SMTP.Port,
		"SMTP_USER":      &cfg.SMTP.User,
		"SMTP_PASS":      &cfg.SMTP.Pass,
		"TO_EMAIL":       &cfg.SMTP.To,
		"ADMIN_USERNAME": &cfg.Admin.Username,
		"ADMIN_PASSWORD": &cfg.Admin.Password,
	}
	for name, dst := range legacy {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	for _, p := range []*string{&cfg.DatabasePath, &cfg.ContentPath} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return nil, errors.Wrapf(err, "expanding %s", *p)
		}
		*p = expanded
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}

var validModes = map[string]bool{
	"debug":   true,
	"release": true,
	"test":    true,
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if !validModes[c.Mode] {
		return errors.Errorf("invalid mode %q: must be one of debug, release, test", c.Mode)
	}
	if c.ViewTTL <= 0 {
		return errors.New("view_ttl must be positive")
	}
	if c.Carousel.TransitionDelay < 0 || c.Carousel.SkillsDelay < 0 {
		return errors.New("carousel delays must be non-negative")
	}
	if c.Carousel.Breakpoint <= 0 || c.TUI.Breakpoint <= 0 {
		return errors.New("breakpoints must be positive")
	}
	for name, n := range map[string]NavConfig{"nav": c.Nav, "tui.nav": c.TUI.Nav} {
		if n.ScrolledAfter < 0 || n.BottomSlack < 0 || n.LookAhead < 0 || n.PreTrigger < 0 {
			return errors.Errorf("%s thresholds must be non-negative", name)
		}
	}
	return nil
}
