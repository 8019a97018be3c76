package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/urfave/cli/v3"
	"gonum.org/v1/gonum/mat"

	"github.com/FlavioCFOliveira/linclass/internal/check"
	"github.com/FlavioCFOliveira/linclass/internal/dataset"
	"github.com/FlavioCFOliveira/linclass/internal/logger"
	"github.com/FlavioCFOliveira/linclass/internal/loss"
	"github.com/FlavioCFOliveira/linclass/internal/report"
)

func checkCmd() *cli.Command {
	var csvPath string
	return &cli.Command{
		Name:  "check",
		Usage: "compare naive and vectorized losses and check gradients numerically",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "csv",
				Usage:       "also write results to this CSV file",
				Destination: &csvPath,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cfg, err := setup(ctx, cmd)
			if err != nil {
				return err
			}

			res, runErr := check.Run(ctx, cfg)
			if res != nil {
				report.Comparisons(os.Stdout, res.Comparisons, cfg.Tolerance)
				report.Gradients(os.Stdout, res.Gradients, cfg.GradTolerance)
				report.Descents(os.Stdout, res.Descents)
				if csvPath != "" {
					if err := report.WriteCSVFile(csvPath, res); err != nil {
						return err
					}
				}
			}
			return runErr
		},
	}
}

func lossCmd() *cli.Command {
	return &cli.Command{
		Name:      "loss",
		Usage:     "evaluate one loss on a random problem",
		ArgsUsage: "<name>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cfg, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			name := cmd.Args().First()
			if name == "" {
				return cli.Exit("loss: missing loss name, see 'linclass list'", 2)
			}
			l, err := loss.Lookup(name)
			if err != nil {
				return err
			}

			rng := rand.New(rand.NewSource(cfg.Seed))
			p := dataset.Random(rng, cfg.Examples, cfg.Dims, cfg.Classes, cfg.WeightScale, cfg.Reg)
			if err := p.Validate(); err != nil {
				return err
			}

			value, grad := l.Loss(p.W, p.X, p.Y, p.Reg)
			logger.FromContext(ctx).Debug("evaluated loss", "loss", name, "value", value)
			fmt.Printf("loss:      %.9f\n", value)
			fmt.Printf("grad norm: %.9f\n", mat.Norm(grad, 2))
			return nil
		},
	}
}

func listCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list available losses",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			for _, name := range loss.Names() {
				fmt.Println(name)
			}
			return nil
		},
	}
}
