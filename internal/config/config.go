// Package config resolves settings in priority order: defaults, the TOML
// config file, environment variables, then command-line flags (applied by the
// cli package).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"route-cli/internal/format"
)

const (
	EnvDir      = "ROUTE_DIR"
	EnvConfig   = "ROUTE_CONFIG"
	EnvFormat   = "ROUTE_FORMAT"
	EnvLogLevel = "ROUTE_LOG_LEVEL"

	FileName = "route.toml"
)

type Config struct {
	Dir       string `toml:"dir"`
	Format    string `toml:"format"`
	Pretty    bool   `toml:"pretty"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	Clipboard bool   `toml:"clipboard"`
	Glyphs    string `toml:"glyphs"`

	// Path is the config file that was read, if any.
	Path string `toml:"-"`
}

func Defaults() Config {
	return Config{
		Format:    "json",
		LogLevel:  "warn",
		LogFormat: "text",
		Clipboard: true,
		Glyphs:    "unicode",
	}
}

// DefaultPath is $XDG_CONFIG_HOME/route/route.toml (or the OS config dir).
func DefaultPath() string {
	if d := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); d != "" {
		return filepath.Join(d, "route", FileName)
	}
	d, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(d, "route", FileName)
}

// Load applies the config file and the environment on top of the defaults.
// An explicit path must exist; the default path is optional.
func Load(path string) (Config, error) {
	cfg := Defaults()
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = os.Getenv(EnvConfig)
		explicit = strings.TrimSpace(path) != ""
	}
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		path = expandHome(path)
		err := loadFile(&cfg, path)
		switch {
		case err == nil:
			cfg.Path = path
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}
	applyEnv(&cfg, os.Getenv)
	cfg.Dir = expandHome(cfg.Dir)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadFile overrides only the keys present in the file.
func loadFile(cfg *Config, path string) error {
	var file Config
	md, err := toml.DecodeFile(path, &file)
	if err != nil {
		return err
	}
	if und := md.Undecoded(); len(und) > 0 {
		return fmt.Errorf("unknown key %q", und[0].String())
	}
	if md.IsDefined("dir") {
		cfg.Dir = file.Dir
	}
	if md.IsDefined("format") {
		cfg.Format = file.Format
	}
	if md.IsDefined("pretty") {
		cfg.Pretty = file.Pretty
	}
	if md.IsDefined("log_level") {
		cfg.LogLevel = file.LogLevel
	}
	if md.IsDefined("log_format") {
		cfg.LogFormat = file.LogFormat
	}
	if md.IsDefined("clipboard") {
		cfg.Clipboard = file.Clipboard
	}
	if md.IsDefined("glyphs") {
		cfg.Glyphs = file.Glyphs
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvDir)); v != "" {
		cfg.Dir = v
	}
	if v := strings.TrimSpace(getenv(EnvFormat)); v != "" {
		cfg.Format = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(getenv("ROUTE_PRETTY")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Pretty = b
		}
	}
}

func (c Config) Validate() error {
	if !format.Valid(c.Format) {
		return fmt.Errorf("invalid format %q (want one of %s)", c.Format, strings.Join(format.Names, ", "))
	}
	switch strings.ToLower(c.Glyphs) {
	case "", "unicode", "ascii":
	default:
		return fmt.Errorf("invalid glyphs %q (want unicode or ascii)", c.Glyphs)
	}
	return nil
}

func expandHome(p string) string {
	p = strings.TrimSpace(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}

// Example is a commented starter file.
const Example = `# route configuration
# dir = "~/.local/share/route"
format = "json"     # json | edn | yaml
pretty = false
log_level = "warn"  # debug | info | warn | error
log_format = "text" # text | json | logfmt
clipboard = true    # export copies to the system clipboard
glyphs = "unicode"  # unicode | ascii
`
