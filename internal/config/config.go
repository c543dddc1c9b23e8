// Package config resolves and validates the settings for a conversion run.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jmylchreest/schemamd/pkg/schematable"
)

// Config holds one conversion run.
type Config struct {
	Input     string `mapstructure:"input" validate:"required"`
	Output    string `mapstructure:"output" validate:"required"`
	Strategy  string `mapstructure:"strategy" validate:"required,oneof=regex dom"`
	RowMarker string `mapstructure:"row_marker" validate:"required"`
}

// Defaults registers the default values on v.
func Defaults(v *viper.Viper) {
	v.SetDefault("strategy", string(schematable.StrategyRegex))
	v.SetDefault("row_marker", schematable.DefaultRowMarker)
}

// Load builds a Config from v and validates it. Positional args, when
// given, are the input and output paths and take precedence over v without
// being written back to it. Output falls back to DefaultOutput(Input).
func Load(v *viper.Viper, args ...string) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if len(args) > 0 && args[0] != "" {
		cfg.Input = args[0]
	}
	if len(args) > 1 && args[1] != "" {
		cfg.Output = args[1]
	}

	if cfg.Output == "" {
		cfg.Output = DefaultOutput(cfg.Input)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultOutput derives the output path from the input path by swapping
// the extension for .md. Stdin input writes to stdout.
func DefaultOutput(input string) string {
	if input == "" {
		return ""
	}
	if input == schematable.StdioPath {
		return schematable.StdioPath
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".md"
}

var validate = newValidator()

// Errors name settings by their config key.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		return name
	})
	return v
}

// FieldError is a single failed setting.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks every setting and joins all failures.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, FieldError{
			Field:   fe.Field(),
			Message: formatValidationError(fe),
		})
	}
	return fmt.Errorf("invalid config: %w", errors.Join(errs...))
}

// Options turns the run settings into converter options.
func (c Config) Options() ([]schematable.Option, error) {
	extractor, err := schematable.NewExtractor(schematable.Strategy(c.Strategy))
	if err != nil {
		return nil, err
	}
	return []schematable.Option{
		schematable.WithExtractor(extractor),
		schematable.WithRowMarker(c.RowMarker),
	}, nil
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(e.Param(), " ", ", "))
	default:
		return fmt.Sprintf("failed validation '%s'", e.Tag())
	}
}
