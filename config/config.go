package config

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/AnkushinDaniil/kpaths/entity"
)

const (
	DefaultA         = 2.46 // Å
	DefaultNKDensity = 2000 // points per Å⁻¹
	DefaultSegLen    = 0.04 // Å⁻¹
	DefaultNPoints   = 200  // points per closed-loop segment
	DefaultOutputDir = "kpaths"
	DefaultMode      = "all"
	DefaultLogLevel  = "info"
)

// Config holds the generator parameters. It is built once by Load and
// passed by value.
type Config struct {
	A         float64 `mapstructure:"a" toml:"a" validate:"finite,gt=0"`
	NKDensity float64 `mapstructure:"nk_density" toml:"nk_density" validate:"finite,gte=0"`
	SegLen    float64 `mapstructure:"seg_len" toml:"seg_len" validate:"finite,gte=0"`
	NPoints   int     `mapstructure:"n_points" toml:"n_points" validate:"gte=1,lte=16777216"`
	OutputDir string  `mapstructure:"output_dir" toml:"output_dir" validate:"required"`
	Mode      string  `mapstructure:"mode" toml:"mode" validate:"oneof=all zoom loop"`
	LogLevel  string  `mapstructure:"log_level" toml:"log_level" validate:"oneof=trace debug info warn warning error fatal panic"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation("finite", isFinite); err != nil {
		panic(err)
	}
	return v
}

func isFinite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Default returns the built-in parameters.
func Default() Config {
	return Config{
		A:         DefaultA,
		NKDensity: DefaultNKDensity,
		SegLen:    DefaultSegLen,
		NPoints:   DefaultNPoints,
		OutputDir: DefaultOutputDir,
		Mode:      DefaultMode,
		LogLevel:  DefaultLogLevel,
	}
}

// SetDefaults registers Default() on v so that file, env and flag values
// only override what they set.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("a", d.A)
	v.SetDefault("nk_density", d.NKDensity)
	v.SetDefault("seg_len", d.SegLen)
	v.SetDefault("n_points", d.NPoints)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("mode", d.Mode)
	v.SetDefault("log_level", d.LogLevel)
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks each field and then the derived quantities: the lattice
// must be representable and a zoom segment must stay within
// entity.MaxPoints samples.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", entity.ErrInvalidInput, formatValidationError(err))
	}
	if _, err := entity.NewLattice(c.A); err != nil {
		return fmt.Errorf("a: %w", err)
	}
	if _, err := entity.PointCount(c.SegLen, c.NKDensity); err != nil {
		return fmt.Errorf("seg_len, nk_density: %w", err)
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}

	e := validationErrs[0]
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%s: field is required", e.Field())
	case "gt":
		return fmt.Errorf("%s: must be greater than %s, got %v", e.Field(), e.Param(), e.Value())
	case "gte":
		return fmt.Errorf("%s: must be at least %s, got %v", e.Field(), e.Param(), e.Value())
	case "lte":
		return fmt.Errorf("%s: must be at most %s, got %v", e.Field(), e.Param(), e.Value())
	case "finite":
		return fmt.Errorf("%s: must be finite, got %v", e.Field(), e.Value())
	case "oneof":
		return fmt.Errorf("%s: must be one of [%s], got %q", e.Field(), e.Param(), e.Value())
	default:
		return fmt.Errorf("%s: validation failed (%s)", e.Field(), e.Tag())
	}
}
