package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. EBOOKFORM_HTTP_ADDR.
const EnvPrefix = "ebookform"

// Config is the decoded process configuration.
type Config struct {
	BaseURL   string         `mapstructure:"base_url" yaml:"base_url"`
	HTTPAddr  string         `mapstructure:"http_addr" yaml:"http_addr"`
	RoutePath string         `mapstructure:"route_path" yaml:"route_path"`
	LoginURL  string         `mapstructure:"login_url" yaml:"login_url"`
	Session   SessionConfig  `mapstructure:"session" yaml:"session"`
	User      UserConfig     `mapstructure:"user" yaml:"user"`
	Theme     ThemeConfig    `mapstructure:"theme" yaml:"theme"`
	Markdown  MarkdownConfig `mapstructure:"markdown" yaml:"markdown"`
}

type SessionConfig struct {
	Cookie string `mapstructure:"cookie" yaml:"cookie"`
}

// UserConfig is the account the demo server treats as signed in. An empty
// name means anonymous.
type UserConfig struct {
	Name                     string `mapstructure:"name" yaml:"name"`
	CanEditEbookPlaceholders bool   `mapstructure:"can_edit_placeholders" yaml:"can_edit_placeholders"`
}

type ThemeConfig struct {
	Name    string `mapstructure:"name" yaml:"name"`
	Variant string `mapstructure:"variant" yaml:"variant"`
}

type MarkdownConfig struct {
	Style    string `mapstructure:"style" yaml:"style"`
	WordWrap int    `mapstructure:"word_wrap" yaml:"word_wrap"`
}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "base_url", Default: "https://standardebooks.org", Comment: "Site root ebook identifiers are built from"},
		{Key: "http_addr", Default: "127.0.0.1:8080", Comment: "Listen address for the demo server"},
		{Key: "route_path", Default: "/ebook-placeholders", Comment: "Path the placeholder form is mounted at"},
		{Key: "login_url", Default: "/sessions/new", Comment: "Where anonymous users are sent to sign in"},
		{Key: "session.cookie", Default: "ebookform_session", Comment: "Name of the flash session cookie"},

		{Key: "user.name", Default: "editor", Comment: "Signed-in user of the demo server; empty for anonymous"},
		{Key: "user.can_edit_placeholders", Default: true, Comment: "Whether the demo user may create and edit placeholders"},

		{Key: "theme.name", Default: "", Comment: "Theme name written to data-theme on the form"},
		{Key: "theme.variant", Default: "", Comment: "Theme variant written to data-theme-variant"},

		{Key: "markdown.style", Default: "dracula", Comment: "Glamour style for terminal markdown"},
		{Key: "markdown.word_wrap", Default: 80, Comment: "Terminal markdown wrap width"},
	}
}

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "ebookform"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "ebookform"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A missing file on the search path is fine; an explicit one is not.
		if explicit || !errors.As(err, &notFound) {
			return fmt.Errorf("config: read: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.Set("base_url", strings.TrimRight(strings.TrimSpace(v.GetString("base_url")), "/"))
	return nil
}

// Decode unmarshals the merged settings into a Config.
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

// CheckConfigValidity reports every invalid setting at once.
func CheckConfigValidity(v *viper.Viper) error {
	var problems []string

	base := v.GetString("base_url")
	if u, err := url.Parse(base); base == "" || err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		problems = append(problems, "base_url must be an absolute http(s) URL")
	}
	if strings.TrimSpace(v.GetString("http_addr")) == "" {
		problems = append(problems, "http_addr is required")
	}
	if route := v.GetString("route_path"); route == "" || !strings.HasPrefix(route, "/") {
		problems = append(problems, "route_path must start with /")
	}
	if strings.TrimSpace(v.GetString("session.cookie")) == "" {
		problems = append(problems, "session.cookie is required")
	}
	if v.GetInt("markdown.word_wrap") < 0 {
		problems = append(problems, "markdown.word_wrap must not be negative")
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("config: invalid configuration: %s", strings.Join(problems, "; "))
}
