package ui

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-playground/validator"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

var errNoConfigFile = fmt.Errorf("no config file loaded")

type Config struct {
	// the corpus file to count; empty or "-" reads standard input
	Corpus string `yaml:"corpus"`
	// where token counts go; empty or "-" writes standard output
	TokenCounts string `yaml:"token_counts"`
	// where n-gram counts go; empty disables n-gram counting entirely
	NgramCounts string `yaml:"ngram_counts"`
	// tokens occurring fewer than this many times are dropped (0 keeps all)
	TokenMin int `validate:"min=0" yaml:"token_min"`
	// n-grams occurring fewer than this many times are dropped (0 keeps all)
	NgramMin int `validate:"min=0" yaml:"ngram_min"`
	// n-gram lengths in characters
	MinN int `validate:"min=1" yaml:"min_n"`
	MaxN int `validate:"min=1" yaml:"max_n"`
	// do not wrap tokens in "<" and ">" before n-gram extraction
	NoBracket bool `yaml:"no_bracket"`
	// apply the token threshold before n-grams are derived, so that
	// dropped tokens contribute no n-grams
	FilterFirst bool `yaml:"filter_first"`
	// sets the degree of concurrency of counting,
	// defaults to the number of cores if omitted or <1.
	Concurrency int `yaml:"concurrency"`
}

// Validate is the final check after all overrides are done (file load, command arguments substituted)
func (cfg Config) Validate() error {
	translateError := func(e validator.FieldError) string {
		switch e.ActualTag() {
		case "min":
			return fmt.Sprintf("value %v is below %s", e.Value(), e.Param())
		default:
			return fmt.Sprintf("invalid value (%s)", e.Tag())
		}
	}

	cfgValidate := validator.New()

	err := cfgValidate.Struct(cfg)
	if err != nil {
		message := "Invalid config values:\n"
		for _, err := range err.(validator.ValidationErrors) {
			message += fmt.Sprintf("> %v: %s\n", err.StructField(), translateError(err))
		}
		return errors.New(message)
	}

	if cfg.MinN > cfg.MaxN {
		return errors.New("min ngram length cannot be greater than max ngram length")
	}

	return nil
}

var DefaultCfg = Config{
	MinN:        3,
	MaxN:        6,
	Concurrency: runtime.NumCPU(),
}

func LoadConfig() (cfg Config, err error) {

	cfg = DefaultCfg

	viper.AddConfigPath(".")
	viper.SetConfigName("corpus-count")

	err = viper.ReadInConfig()
	if err == nil {
		err = viper.Unmarshal(
			&cfg, func(dc *mapstructure.DecoderConfig) {
				dc.TagName = "yaml"
			},
		)
		if err != nil {
			err = fmt.Errorf("unable to decode into config struct: %w", err)
			return
		}
	} else {
		// Check config read errors
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			err = errNoConfigFile
		} else {
			err = fmt.Errorf("unable to use config file: %s", err)
		}
		return
	}

	if cfg.Concurrency < 1 {
		cfg.Concurrency = DefaultCfg.Concurrency
	}

	return cfg, cfg.Validate()
}
