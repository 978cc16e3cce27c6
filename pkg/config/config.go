// Package config loads the run configuration from defaults, an optional
// YAML file and TITANIC_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TITANIC"

// ErrInvalid means the configuration cannot drive a run.
var ErrInvalid = errors.New("invalid config")

// Config is the complete run configuration.
type Config struct {
	// Input is the manifest CSV.
	Input string `yaml:"input" envconfig:"INPUT" validate:"required"`
	// OutputDir receives charts, the workbook and the cleaned CSV.
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	Charts    bool   `yaml:"charts" envconfig:"CHARTS"`
	Tables    bool   `yaml:"tables" envconfig:"TABLES"`
	// Workbook is the xlsx file name under OutputDir. Empty skips it.
	Workbook string `yaml:"workbook" envconfig:"WORKBOOK"`
	// CleanedCSV is the cleaned table file name under OutputDir. Empty skips it.
	CleanedCSV string        `yaml:"cleaned_csv" envconfig:"CLEANED_CSV"`
	Chart      ChartConfig   `yaml:"chart" envconfig:"CHART"`
	Logging    LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// ChartConfig is the size of every side-by-side figure, in inches.
type ChartConfig struct {
	Width  float64 `yaml:"width" envconfig:"WIDTH" validate:"gt=0"`
	Height float64 `yaml:"height" envconfig:"HEIGHT" validate:"gt=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"loglevel"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json console"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Input:     "./titanic_data.csv",
		OutputDir: "out",
		Charts:    true,
		Tables:    true,
		Workbook:  "survival.xlsx",
		Chart:     ChartConfig{Width: 15, Height: 7.5},
		Logging:   LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load builds the configuration. path may be empty; a named file that does
// not exist is an error. A .env file in the working directory is optional.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	_ = godotenv.Load()
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		_, err := zapcore.ParseLevel(fl.Field().String())
		return err == nil
	})
	// Report fields by their YAML key.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
	})
	return v
}

// Validate rejects configurations that cannot drive a run.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s fails %q (got %v)", ErrInvalid, fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.writesFiles() && c.OutputDir == "" {
		return fmt.Errorf("%w: output_dir is empty", ErrInvalid)
	}
	return nil
}

func (c *Config) writesFiles() bool {
	return c.Charts || c.Workbook != "" || c.CleanedCSV != ""
}

// OutputPath joins name onto the output directory.
func (c *Config) OutputPath(name string) string {
	return filepath.Join(c.OutputDir, name)
}
