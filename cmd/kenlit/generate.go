package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/MitchMatt/Kenyan-Generative-Lit/internal/generator"
	"github.com/MitchMatt/Kenyan-Generative-Lit/internal/model"
)

func generateCmd() *cli.Command {
	var (
		seedText    string
		words       int64
		temp        float64
		samplerSeed int64
	)

	return &cli.Command{
		Name:  "generate",
		Usage: "Generate text from a trained checkpoint",
		Flags: append([]cli.Flag{
			checkpointFlag(),
			&cli.StringFlag{
				Name:        "seed-text",
				Aliases:     []string{"s"},
				Usage:       "seed words to extend",
				Value:       "nairobi streets",
				Destination: &seedText,
			},
			&cli.Int64Flag{
				Name:        "words",
				Aliases:     []string{"n"},
				Usage:       "number of words to generate",
				Value:       12,
				Destination: &words,
			},
			&cli.Float64Flag{
				Name:        "temp",
				Aliases:     []string{"temperature", "t"},
				Usage:       "sampling temperature (diversity)",
				Value:       1.0,
				Destination: &temp,
			},
			&cli.Int64Flag{
				Name:        "sampler-seed",
				Usage:       "sampling RNG seed (-1 = random)",
				Value:       -1,
				Destination: &samplerSeed,
			},
		}, loggingFlags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := LoadConfig()
			applyCommonConfig(c, cfg)
			applyGenerateConfig(c, cfg, &words, &temp, &samplerSeed)
			log := newLogger()

			net, v, err := model.Load(checkpointPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v (run `kenlit train` first?)", err), 1)
			}
			log.Debug("checkpoint loaded",
				"path", checkpointPath,
				"vocab_size", net.Config().VocabSize,
				"prefix_len", net.Config().PrefixLen,
			)

			svc, err := generator.NewService(net, v, net.Config().PrefixLen)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			text, err := svc.Generate(generator.Params{
				Seed:        seedText,
				Words:       int(words),
				Temperature: temp,
				SamplerSeed: samplerSeed,
			})
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			fmt.Println(text)
			return nil
		},
	}
}
