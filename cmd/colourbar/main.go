// Command colourbar computes colour scales from the command line and prints
// them as JSON.
//
//	colourbar build --min 0.2 --max 12.5 --bins 10 --scale log --colour-map Blues
//	colourbar boundaries --min 0 --max 10 --num-values 6 --target 3
//	colourbar ticks --min 0 --max 10 --bins 10 --max-ticks 6 --target 3
//	colourbar colours --colour-map viridis --n 5
//	colourbar sigfigs --n 2 0.012345 98765
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/couchcryptid/design-value-explorer/internal/colorscale"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(w io.Writer) *cli.App {
	return &cli.App{
		Name:   "colourbar",
		Usage:  "compute discrete colour scales",
		Writer: w,
		Commands: []*cli.Command{
			newBuildCommand(),
			newBoundariesCommand(),
			newTicksCommand(),
			newColoursCommand(),
			newSigFigsCommand(),
		},
	}
}

func rangeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{Name: "min", Usage: "lower end of the data range", Required: true},
		&cli.Float64Flag{Name: "max", Usage: "upper end of the data range", Required: true},
		&cli.Float64Flag{Name: "target", Usage: "value that must fall on a bin boundary"},
		&cli.StringFlag{Name: "scale", Usage: "linear or log", Value: string(colorscale.Linear)},
	}
}

func newBuildCommand() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "build a complete colourbar",
		Flags: append(rangeFlags(),
			&cli.IntFlag{Name: "bins", Usage: "number of colour bins", Value: 10},
			&cli.StringFlag{Name: "colour-map", Usage: "colour map name", Value: "viridis"},
			&cli.IntFlag{Name: "max-ticks", Usage: "maximum number of ticks", Value: colorscale.DefaultMaxTicks},
		),
		Action: func(c *cli.Context) error {
			mode, err := colorscale.ParseMode(c.String("scale"))
			if err != nil {
				return err
			}
			cb, err := colorscale.Build(colorscale.Request{
				Min:       c.Float64("min"),
				Max:       c.Float64("max"),
				Bins:      c.Int("bins"),
				Target:    target(c),
				Mode:      mode,
				ColourMap: c.String("colour-map"),
				MaxTicks:  c.Int("max-ticks"),
			})
			if err != nil {
				return err
			}
			return printJSON(c, cb)
		},
	}
}

func newBoundariesCommand() *cli.Command {
	return &cli.Command{
		Name:  "boundaries",
		Usage: "uniformly spaced values with an optional target",
		Flags: append(rangeFlags(),
			&cli.IntFlag{Name: "num-values", Usage: "number of values to generate", Value: 11},
		),
		Action: func(c *cli.Context) error {
			mode, err := colorscale.ParseMode(c.String("scale"))
			if err != nil {
				return err
			}
			values, err := colorscale.UniformlySpacedWithTarget(
				c.Float64("min"), c.Float64("max"), c.Int("num-values"), target(c), mode)
			if err != nil {
				return err
			}
			return printJSON(c, values)
		},
	}
}

func newTicksCommand() *cli.Command {
	return &cli.Command{
		Name:  "ticks",
		Usage: "colourbar tick values",
		Flags: append(rangeFlags(),
			&cli.IntFlag{Name: "bins", Usage: "number of colour bins", Value: 10},
			&cli.IntFlag{Name: "max-ticks", Usage: "maximum number of ticks", Value: colorscale.DefaultMaxTicks},
		),
		Action: func(c *cli.Context) error {
			mode, err := colorscale.ParseMode(c.String("scale"))
			if err != nil {
				return err
			}
			ticks, err := colorscale.UseTicks(
				c.Float64("min"), c.Float64("max"), target(c), mode, c.Int("bins"), c.Int("max-ticks"))
			if err != nil {
				return err
			}
			return printJSON(c, ticks)
		},
	}
}

func newColoursCommand() *cli.Command {
	return &cli.Command{
		Name:  "colours",
		Usage: "sample a colour map, or list the available maps",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "colour-map", Usage: "colour map name", Value: "viridis"},
			&cli.IntFlag{Name: "n", Usage: "number of colours", Value: 10},
			&cli.BoolFlag{Name: "list", Usage: "list colour map names"},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("list") {
				return printJSON(c, colorscale.ColourMapNames())
			}
			colours, err := colorscale.Colors(c.String("colour-map"), c.Int("n"))
			if err != nil {
				return err
			}
			return printJSON(c, colours)
		},
	}
}

func newSigFigsCommand() *cli.Command {
	return &cli.Command{
		Name:      "sigfigs",
		Usage:     "round numbers to significant figures",
		ArgsUsage: "VALUE...",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "n", Usage: "significant figures", Value: 3},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("sigfigs: at least one value is required")
			}
			out := make([]float64, 0, c.NArg())
			for _, arg := range c.Args().Slice() {
				x, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("sigfigs: %q is not a number", arg)
				}
				out = append(out, colorscale.SigFigs(x, c.Int("n")))
			}
			return printJSON(c, out)
		},
	}
}

// target returns the --target flag, or nil when it was not given.
func target(c *cli.Context) *float64 {
	if !c.IsSet("target") {
		return nil
	}
	return colorscale.TargetAt(c.Float64("target"))
}

func printJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
