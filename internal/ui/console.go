package ui

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func overrideConfig(cfg Config, ctx *cli.Context) Config {
	if ctx.String("Corpus") != "" {
		cfg.Corpus = ctx.String("Corpus")
	}
	if ctx.String("TokenCounts") != "" {
		cfg.TokenCounts = ctx.String("TokenCounts")
	}
	if ctx.String("NgramCounts") != "" {
		cfg.NgramCounts = ctx.String("NgramCounts")
	}
	// IsSet (rather than a zero check) lets explicit zeroes through,
	// so invalid values like "--MinN 0" are reported instead of ignored
	if ctx.IsSet("TokenMin") {
		cfg.TokenMin = ctx.Int("TokenMin")
	}
	if ctx.IsSet("NgramMin") {
		cfg.NgramMin = ctx.Int("NgramMin")
	}
	if ctx.IsSet("MinN") {
		cfg.MinN = ctx.Int("MinN")
	}
	if ctx.IsSet("MaxN") {
		cfg.MaxN = ctx.Int("MaxN")
	}
	if ctx.Bool("NoBracket") {
		cfg.NoBracket = true
	}
	if ctx.Bool("FilterFirst") {
		cfg.FilterFirst = true
	}
	if ctx.IsSet("Concurrency") {
		cfg.Concurrency = ctx.Int("Concurrency")
	}

	return cfg
}

func PrepareConsoleApp(logger *zap.Logger) *cli.App {

	prepareCfg := func(ctx *cli.Context) (Config, error) {
		cfg, err := LoadConfig()
		if err != nil && !errors.Is(err, errNoConfigFile) {
			return cfg, err
		}
		cfg = overrideConfig(cfg, ctx)
		if cfg.Concurrency < 1 {
			cfg.Concurrency = DefaultCfg.Concurrency
		}
		logger.Debug("Loaded config", zap.Any("config", cfg))
		return cfg, cfg.Validate()
	}

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "Corpus",
			Aliases: []string{"c"},
			Usage:   "the corpus file to count (\"-\" or omitted reads standard input)",
		},
		&cli.StringFlag{
			Name:    "TokenCounts",
			Aliases: []string{"t"},
			Usage:   "where to write token counts (\"-\" or omitted writes standard output)",
		},
		&cli.StringFlag{
			Name:    "NgramCounts",
			Aliases: []string{"n"},
			Usage:   "where to write ngram counts (omitted disables ngram counting)",
		},
		&cli.IntFlag{
			Name:    "TokenMin",
			Aliases: []string{"tokenmin"},
			Usage:   "drop tokens occurring fewer than this many times",
		},
		&cli.IntFlag{
			Name:    "NgramMin",
			Aliases: []string{"ngrammin"},
			Usage:   "drop ngrams occurring fewer than this many times",
		},
		&cli.IntFlag{
			Name:    "MinN",
			Aliases: []string{"minn"},
			Usage:   "min ngram length in characters",
		},
		&cli.IntFlag{
			Name:    "MaxN",
			Aliases: []string{"maxn"},
			Usage:   "max ngram length in characters",
		},
		&cli.BoolFlag{
			Name:    "NoBracket",
			Aliases: []string{"nobracket"},
			Usage:   "do not wrap tokens in \"<\" and \">\" before ngram extraction",
		},
		&cli.BoolFlag{
			Name:    "FilterFirst",
			Aliases: []string{"filterfirst"},
			Usage:   "apply the token threshold before ngrams are derived",
		},
		&cli.IntFlag{
			Name:    "Concurrency",
			Aliases: []string{"workers"},
			Usage:   "sets the degree of concurrency of counting",
		},
	}

	app := &cli.App{
		Name:    "corpus-count",
		Usage:   "count token and character ngram frequencies in a corpus",
		Version: "0.1.1",
		Flags:   flags,
		Action: func(ctx *cli.Context) error {
			cfg, err := prepareCfg(ctx)
			if err != nil {
				return err
			}
			return NewApp(cfg, logger).Run(ctx.Context)
		},
		Commands: []*cli.Command{
			{
				Name:        "gen",
				Flags:       flags,
				Description: "Generates config to stdOut.",
				Action: func(ctx *cli.Context) error {
					cfg := overrideConfig(DefaultCfg, ctx)
					err := cfg.Validate()
					if err != nil {
						return err
					}
					yamlData, err := yaml.Marshal(&cfg)
					if err != nil {
						return err
					}
					fmt.Print(string(yamlData))
					return nil
				},
			},
		},
	}

	return app
}
