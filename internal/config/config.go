package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vvka-141/ardmeta/pkg/ardmeta"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type SchemaConfig struct {
	Path     string `yaml:"path,omitempty"`
	URL      string `yaml:"url,omitempty"`
	CacheDir string `yaml:"cache_dir,omitempty"`
}

type ValidatorConfig struct {
	Command string `yaml:"command,omitempty"`
	Timeout string `yaml:"timeout,omitempty"`
}

type RetryConfig struct {
	MaxAttempts  *int   `yaml:"max_attempts,omitempty"`
	InitialDelay string `yaml:"initial_delay,omitempty"`
	MaxDelay     string `yaml:"max_delay,omitempty"`
}

type AppendConfig struct {
	Suffix    string `yaml:"suffix,omitempty"`
	BandCount int    `yaml:"band_count,omitempty"`
	BandsFile string `yaml:"bands_file,omitempty"`
}

type RasterConfig struct {
	OutputDir string `yaml:"output_dir,omitempty"`
}

// ProjectConfig mirrors ardmeta.yaml. Empty fields take the defaults in Resolve.
type ProjectConfig struct {
	Schema    SchemaConfig    `yaml:"schema"`
	Validator ValidatorConfig `yaml:"validator"`
	Retry     RetryConfig     `yaml:"retry"`
	Append    AppendConfig    `yaml:"append"`
	Raster    RasterConfig    `yaml:"raster"`
}

const ConfigFileName = "ardmeta.yaml"

// Load reads ConfigFileName from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads the config file at path.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ardmeta.ErrInvalidConfig, path, err)
	}
	return &cfg, nil
}

// Settings are the effective values after defaults are applied.
type Settings struct {
	SchemaPath       string
	SchemaURL        string
	SchemaCacheDir   string
	ValidatorCommand string
	ValidateTimeout  time.Duration

	RetryMaxAttempts  int
	RetryInitialDelay time.Duration
	RetryMaxDelay     time.Duration

	AppendSuffix    string
	AppendBandCount int
	AppendBandsFile string

	RasterOutputDir string
}

// Resolve fills unset fields with defaults and parses durations.
// A nil config yields the defaults.
func (c *ProjectConfig) Resolve() (Settings, error) {
	s := Settings{
		SchemaCacheDir:    defaultCacheDir(),
		ValidatorCommand:  "xmllint",
		ValidateTimeout:   ardmeta.DefaultValidateTimeout,
		RetryMaxAttempts:  ardmeta.DefaultRetryMaxAttempts,
		RetryInitialDelay: ardmeta.DefaultRetryInitialDelay,
		RetryMaxDelay:     ardmeta.DefaultRetryMaxDelay,
		AppendSuffix:      ardmeta.DefaultAppendSuffix,
		AppendBandCount:   ardmeta.DefaultAppendBandCount,
		RasterOutputDir:   ardmeta.DefaultRasterOutputDir,
	}
	if c == nil {
		return s, nil
	}

	setString(&s.SchemaPath, c.Schema.Path)
	setString(&s.SchemaURL, c.Schema.URL)
	setString(&s.SchemaCacheDir, c.Schema.CacheDir)
	setString(&s.ValidatorCommand, c.Validator.Command)
	setString(&s.AppendSuffix, c.Append.Suffix)
	setString(&s.AppendBandsFile, c.Append.BandsFile)
	setString(&s.RasterOutputDir, c.Raster.OutputDir)

	if c.Append.BandCount < 0 {
		return Settings{}, fmt.Errorf("%w: append.band_count must not be negative", ardmeta.ErrInvalidConfig)
	}
	if c.Append.BandCount > 0 {
		s.AppendBandCount = c.Append.BandCount
	}
	if c.Retry.MaxAttempts != nil {
		s.RetryMaxAttempts = *c.Retry.MaxAttempts
	}

	durations := []struct {
		key   string
		value string
		dst   *time.Duration
	}{
		{"validator.timeout", c.Validator.Timeout, &s.ValidateTimeout},
		{"retry.initial_delay", c.Retry.InitialDelay, &s.RetryInitialDelay},
		{"retry.max_delay", c.Retry.MaxDelay, &s.RetryMaxDelay},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		v, err := time.ParseDuration(d.value)
		if err != nil || v < 0 {
			return Settings{}, fmt.Errorf("%w: %s: invalid duration %q", ardmeta.ErrInvalidConfig, d.key, d.value)
		}
		*d.dst = v
	}
	return s, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "ardmeta")
	}
	return filepath.Join(os.TempDir(), "ardmeta")
}
