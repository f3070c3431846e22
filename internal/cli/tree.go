package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	ltree "github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ontograph/pkg/config"
	"github.com/matzehuels/ontograph/pkg/ontology"
	"github.com/matzehuels/ontograph/pkg/pipeline"
	"github.com/matzehuels/ontograph/pkg/render/nodelink"
	"github.com/matzehuels/ontograph/pkg/tree"
)

// formatText is the terminal rendering accepted by the tree command.
const formatText = "text"

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	format      string // text (default), json, dot, svg
	output      string // output file, stdout when empty
	attach      bool   // nest used entities under placed metrics
	interactive bool   // open the terminal browser
	detailed    bool   // include codes in DOT labels
}

// treeCommand creates the tree command.
func (c *CLI) treeCommand() *cobra.Command {
	opts := treeOpts{format: formatText}

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the value chain → module → metric hierarchy",
		Long: `Show the value chain → module → metric hierarchy.

Relationships are classified into module → value chain, metric → module,
metric → value chain and metric → entity assignments. Items that cannot be
placed are grouped under "Unassigned Modules", "Unassigned KPIs" and
"Unassigned Entities".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatText {
				if err := pipeline.ValidateFormat(opts.format, pipeline.TreeFormats); err != nil {
					return err
				}
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("attach-entities") {
				opts.attach = cfg.Engine.AttachEntities
			}
			return c.runTree(cmd.Context(), cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text (default), json, dot, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.attach, "attach-entities", false, "nest entities under the metrics that use them")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the tree interactively")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show codes in DOT and SVG output")

	return cmd
}

// runTree loads the registry and prints or browses the forest.
func (c *CLI) runTree(ctx context.Context, cfg config.Config, opts treeOpts) error {
	runner, closeSrc, err := c.newRunner(ctx, cfg)
	defer closeSrc()
	if err != nil {
		return err
	}

	res, err := withSpinner(ctx, "Loading registry...", func(ctx context.Context) (*tree.Result, error) {
		return runner.Tree(ctx, tree.Options{AttachEntitiesToMetrics: opts.attach, Policy: runner.Policy})
	})
	if err != nil {
		return err
	}
	if res.Empty() {
		printWarning("No registry data available")
		return nil
	}
	if n := len(res.Assignments.Conflicts); n > 0 {
		loggerFromContext(ctx).Warn("conflicting relationships resolved", "count", n, "policy", cfg.Engine.ConflictPolicy)
	}

	if opts.interactive {
		_, err := tea.NewProgram(newTreeModel(res), tea.WithContext(ctx), tea.WithAltScreen()).Run()
		return err
	}
	if opts.format == formatText {
		if err := writeOutput([]byte(renderTreeText(res)), opts.output); err != nil {
			return err
		}
		if opts.output == "" {
			printNextStep("Browse interactively", appName+" tree -i")
		}
		return nil
	}

	data, err := pipeline.RenderTree(ctx, res, opts.format, nodelink.Options{Detailed: opts.detailed})
	if err != nil {
		return err
	}
	return writeOutput(data, opts.output)
}

// =============================================================================
// Text Rendering
// =============================================================================

// renderTreeText draws the forest with box-drawing connectors, one root per
// block.
func renderTreeText(res *tree.Result) string {
	var b strings.Builder
	for _, root := range res.Roots {
		b.WriteString(textTree(root).String())
		b.WriteString("\n")
	}
	return b.String()
}

func textTree(n *tree.Node) *ltree.Tree {
	t := ltree.Root(nodeLabel(n)).
		Enumerator(ltree.RoundedEnumerator).
		EnumeratorStyle(StyleDim)
	for _, child := range n.Children {
		if child.IsLeaf() {
			t.Child(nodeLabel(child))
		} else {
			t.Child(textTree(child))
		}
	}
	return t
}

// nodeLabel renders a node name styled by kind, with its metric count or
// the entities a metric uses.
func nodeLabel(n *tree.Node) string {
	if n.IsOrphanBucket {
		return styleBucket.Render(n.Label()) + StyleDim.Render(fmt.Sprintf(" (%d)", len(n.Children)))
	}

	label := kindStyle(n.Kind()).Render(n.Label())
	switch n.Kind() {
	case ontology.KindValueChain, ontology.KindModule:
		label += StyleDim.Render(fmt.Sprintf(" · %d KPIs", n.DescendantMetricCount))
	case ontology.KindMetric:
		if len(n.Uses) > 0 && n.IsLeaf() {
			label += StyleDim.Render(" uses " + strings.Join(n.Uses, ", "))
		}
	}
	return label
}
