package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/MitchMatt/Kenyan-Generative-Lit/internal/corpus"
	"github.com/MitchMatt/Kenyan-Generative-Lit/internal/dataset"
	"github.com/MitchMatt/Kenyan-Generative-Lit/internal/model"
	"github.com/MitchMatt/Kenyan-Generative-Lit/internal/vocab"
)

func trainCmd() *cli.Command {
	var (
		epochs       int64
		batchSize    int64
		learningRate float64
		patience     int64
		embeddingDim int64
		hiddenDim    int64
		minWindow    int64
		initSeed     int64
	)

	return &cli.Command{
		Name:  "train",
		Usage: "Train the word model on the corpus and write a checkpoint",
		Flags: append([]cli.Flag{
			checkpointFlag(),
			corpusFlag(),
			&cli.Int64Flag{
				Name:        "epochs",
				Usage:       "training epochs",
				Value:       300,
				Destination: &epochs,
			},
			&cli.Int64Flag{
				Name:        "batch-size",
				Aliases:     []string{"batch_size"},
				Usage:       "minibatch size",
				Value:       8,
				Destination: &batchSize,
			},
			&cli.Float64Flag{
				Name:        "learning-rate",
				Aliases:     []string{"lr"},
				Usage:       "SGD learning rate",
				Value:       0.05,
				Destination: &learningRate,
			},
			&cli.Int64Flag{
				Name:        "patience",
				Usage:       "early stopping patience in epochs (0 disables)",
				Value:       15,
				Destination: &patience,
			},
			&cli.Int64Flag{
				Name:        "embedding-dim",
				Usage:       "embedding vector size",
				Value:       16,
				Destination: &embeddingDim,
			},
			&cli.Int64Flag{
				Name:        "hidden-dim",
				Usage:       "recurrent hidden state size",
				Value:       32,
				Destination: &hiddenDim,
			},
			&cli.Int64Flag{
				Name:        "min-window",
				Usage:       "smallest training window in tokens (context plus label)",
				Value:       dataset.DefaultMinWindow,
				Destination: &minWindow,
			},
			&cli.Int64Flag{
				Name:        "init-seed",
				Usage:       "weight init RNG seed (-1 = time-derived)",
				Value:       -1,
				Destination: &initSeed,
			},
		}, loggingFlags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := LoadConfig()
			applyCommonConfig(c, cfg)
			applyTrainConfig(c, cfg, &epochs, &minWindow)
			log := newLogger()

			raw := corpus.Sentences()
			if corpusPath != "" {
				var err error
				raw, err = corpus.FromFile(corpusPath)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
			}
			normalized, err := corpus.Normalize(raw)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			v := vocab.Build(normalized)
			ds, err := dataset.Build(normalized, v, int(minWindow))
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			log.Info("dataset ready",
				"sentences", len(normalized),
				"vocab_size", ds.VocabSize,
				"examples", len(ds.Examples),
				"prefix_len", ds.PrefixLen(),
			)

			seed := initSeed
			if seed < 0 {
				seed = time.Now().UnixNano()
			}
			net, err := model.New(model.Config{
				VocabSize:    ds.VocabSize,
				EmbeddingDim: int(embeddingDim),
				HiddenDim:    int(hiddenDim),
				PrefixLen:    ds.PrefixLen(),
				MinWindow:    ds.MinWindow,
				Seed:         seed,
			})
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			start := time.Now()
			history, err := net.Fit(ds.Examples, model.FitConfig{
				Epochs:       int(epochs),
				BatchSize:    int(batchSize),
				LearningRate: learningRate,
				Patience:     int(patience),
			}, log)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: fit: %v", err), 1)
			}
			log.Info("training complete",
				"epochs_run", len(history),
				"final_loss", history[len(history)-1],
				"duration", time.Since(start).Round(time.Millisecond),
			)

			if err := model.Save(checkpointPath, net, v); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			log.Info("checkpoint written", "path", checkpointPath)
			return nil
		},
	}
}
