package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ontograph/pkg/config"
	"github.com/matzehuels/ontograph/pkg/graph"
	"github.com/matzehuels/ontograph/pkg/layout/force"
	"github.com/matzehuels/ontograph/pkg/pipeline"
	"github.com/matzehuels/ontograph/pkg/render/sink"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	diagram     bool   // input is diagram text, not a graph
	focus       string // diagram focus entity
	format      string // json (default), svg
	output      string // output file, stdout when empty
	ticks       int    // simulation ticks, 0 derives from config
	animate     bool   // pace ticks in real time
	highlight   string // node ID drawn emphasized in SVG
	interactive bool   // embed hover/drag script in SVG
}

// layoutCommand creates the layout command for computing force layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := layoutOpts{format: pipeline.FormatJSON}

	cmd := &cobra.Command{
		Use:   "layout [file|-]",
		Short: "Compute force-directed positions for a graph or diagram",
		Long: `Compute force-directed positions for a graph or diagram.

The input is a graph.json file (produced by 'graph -f json') or, with
--diagram, relationship diagram text. Nodes start on a circle around the
centre and are moved by repulsion, link springs and a centering pull for a
bounded number of ticks, clamped to the frame.

By default ticks run back to back. --animate paces them by the configured
layout period and logs progress as it goes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.format, pipeline.LayoutFormats); err != nil {
				return err
			}
			if opts.ticks < 0 {
				return fmt.Errorf("--ticks must not be negative")
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return runLayout(cmd.Context(), args[0], cfg.Engine, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.diagram, "diagram", false, "read relationship diagram text instead of graph JSON")
	cmd.Flags().StringVar(&opts.focus, "focus", "", "diagram focus entity (with --diagram)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: json (default), svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVar(&opts.ticks, "ticks", 0, "simulation ticks (default: layout_duration / layout_period)")
	cmd.Flags().BoolVar(&opts.animate, "animate", false, "pace ticks in real time")
	cmd.Flags().StringVar(&opts.highlight, "highlight", "", "node ID to emphasize (svg)")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "embed hover and drag handling (svg)")

	return cmd
}

// runLayout reads the input, runs the simulation and writes positions.
func runLayout(ctx context.Context, input string, engine config.Engine, opts layoutOpts) error {
	logger := loggerFromContext(ctx)

	data, err := readInput(input)
	if err != nil {
		return err
	}

	lo := layoutSettings(engine, opts)
	if opts.animate {
		prog := newProgress(logger)
		lo.OnTick = func(l graph.Layout) {
			logger.Debug("tick", "nodes", len(l.Nodes))
		}
		defer prog.done(fmt.Sprintf("Simulated %d ticks", lo.Ticks))
	}

	var l graph.Layout
	if opts.diagram {
		s := pipeline.ParseSchema(ctx, string(data), opts.focus)
		logger.Infof("Parsed diagram: %d entities, %d relationships", len(s.Entities), len(s.Relationships))
		l, err = pipeline.LayoutSchema(ctx, s, lo)
	} else {
		var g graph.Graph
		g, err = graph.ReadGraph(bytes.NewReader(data))
		if err != nil {
			return err
		}
		logger.Infof("Loaded graph: %d nodes, %d links", len(g.Nodes), len(g.Links))
		l, err = pipeline.LayoutGraph(ctx, g, lo)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if len(l.Nodes) == 0 {
		printWarning("Nothing to lay out")
		return nil
	}

	out, rerr := pipeline.RenderLayout(l, opts.format, svgOptions(opts)...)
	if rerr != nil {
		return rerr
	}
	if werr := writeOutput(out, opts.output); werr != nil {
		return werr
	}
	// A cancelled run still writes the last completed tick.
	return err
}

// layoutSettings derives simulation options from config and flags.
func layoutSettings(engine config.Engine, opts layoutOpts) pipeline.LayoutOptions {
	period := engine.LayoutPeriod.Std()
	ticks := opts.ticks
	if ticks == 0 {
		ticks = force.TicksFor(engine.LayoutDuration.Std(), period)
	}

	lo := pipeline.LayoutOptions{Ticks: ticks}
	if opts.animate {
		lo.Clock = force.NewTickerClock(period)
	}
	return lo
}

func svgOptions(opts layoutOpts) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.highlight != "" {
		out = append(out, sink.WithHighlight(opts.highlight))
	}
	if opts.interactive {
		out = append(out, sink.WithInteraction())
	}
	return out
}
