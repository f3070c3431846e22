package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ontograph/pkg/config"
	"github.com/matzehuels/ontograph/pkg/graph"
	"github.com/matzehuels/ontograph/pkg/pipeline"
	"github.com/matzehuels/ontograph/pkg/render/nodelink"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		root     string
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the node-link graph, optionally scoped to a root",
		Long: `Export the node-link graph, optionally scoped to a root.

With --root, only the root and what it reaches within three forward hops
(value chain → module → metric → entity) is kept, together with the links
between kept nodes. Roots are written as <kind>:<code>, e.g. module:billing.
An unknown root yields an empty graph.

The JSON output is the input format of the layout command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(format, pipeline.GraphFormats); err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return c.runGraph(cmd.Context(), cfg, root, format, output, detailed)
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "scope the graph to this node (<kind>:<code>)")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatJSON, "output format: json (default), dot, svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show codes in DOT and SVG output")

	return cmd
}

// runGraph loads the registry, filters the graph and writes it.
func (c *CLI) runGraph(ctx context.Context, cfg config.Config, root, format, output string, detailed bool) error {
	runner, closeSrc, err := c.newRunner(ctx, cfg)
	defer closeSrc()
	if err != nil {
		return err
	}

	g, err := withSpinner(ctx, "Loading registry...", func(ctx context.Context) (graph.Graph, error) {
		return runner.Graph(ctx, root)
	})
	if err != nil {
		return err
	}
	if g.Empty() {
		if root != "" {
			printWarning("Nothing matches root %s", root)
		} else {
			printWarning("No registry data available")
		}
		return nil
	}
	loggerFromContext(ctx).Debug("graph built", "root", root, "nodes", len(g.Nodes), "links", len(g.Links))

	data, err := pipeline.RenderGraph(ctx, g, format, nodelink.Options{Detailed: detailed})
	if err != nil {
		return err
	}
	return writeOutput(data, output)
}
