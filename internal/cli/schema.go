package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ontograph/pkg/errors"
	"github.com/matzehuels/ontograph/pkg/pipeline"
	"github.com/matzehuels/ontograph/pkg/render/nodelink"
	"github.com/matzehuels/ontograph/pkg/schema"
)

// schemaOpts holds the command-line flags for the schema command.
type schemaOpts struct {
	entity string // registry entity whose definition is parsed
	focus  string // entity the diagram is shown for
	format string // json (default), dot, svg
	output string // output file, stdout when empty
}

// schemaCommand creates the schema command.
func (c *CLI) schemaCommand() *cobra.Command {
	opts := schemaOpts{format: pipeline.FormatJSON}

	cmd := &cobra.Command{
		Use:   "schema [file|-]",
		Short: "Parse an entity relationship diagram",
		Long: `Parse an entity relationship diagram.

Each line holds one relationship, e.g.

  Invoice "1" *-- "many" InvoiceLine : contains
  Customer -- Invoice
  Truck --|> Vehicle
  Order ..> Payment

Lines that match no form are skipped. --focus names the entity the diagram
is shown for; generalizations pointing away from it are marked backward.

With --entity, the diagram is read from that entity's schema definition in
the registry and the entity is the focus.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.format, pipeline.SchemaFormats); err != nil {
				return err
			}
			if err := errors.ValidateFocus(opts.focus); err != nil {
				return err
			}
			switch {
			case opts.entity != "" && len(args) > 0:
				return errors.New(errors.ErrCodeInvalidInput, "pass either a diagram file or --entity, not both")
			case opts.entity != "":
				return c.runEntitySchema(cmd.Context(), opts)
			case len(args) == 0:
				return errors.New(errors.ErrCodeInvalidInput, "a diagram file or --entity is required")
			}
			return runSchema(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.entity, "entity", "", "parse the schema definition of this registry entity")
	cmd.Flags().StringVar(&opts.focus, "focus", "", "entity the diagram is shown for")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: json (default), dot, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// runSchema parses a diagram file and writes the result.
func runSchema(ctx context.Context, input string, opts schemaOpts) error {
	text, err := readInput(input)
	if err != nil {
		return err
	}
	s := pipeline.ParseSchema(ctx, string(text), opts.focus)
	return writeSchema(ctx, s, opts)
}

// runEntitySchema parses the definition stored on a registry entity.
func (c *CLI) runEntitySchema(ctx context.Context, opts schemaOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, closeSrc, err := c.newRunner(ctx, cfg)
	defer closeSrc()
	if err != nil {
		return err
	}

	s, err := withSpinner(ctx, "Loading registry...", func(ctx context.Context) (*schema.Schema, error) {
		return runner.EntitySchema(ctx, opts.entity)
	})
	if err != nil {
		return err
	}
	if opts.focus == "" {
		opts.focus = opts.entity
	}
	return writeSchema(ctx, s, opts)
}

func writeSchema(ctx context.Context, s *schema.Schema, opts schemaOpts) error {
	logger := loggerFromContext(ctx)
	if s.Empty() {
		printWarning("No relationships found in diagram")
		return nil
	}
	logger.Debug("parsed diagram", "entities", len(s.Entities), "relationships", len(s.Relationships))

	data, err := pipeline.RenderSchema(ctx, s, opts.format, nodelink.Options{Focus: opts.focus})
	if err != nil {
		return err
	}
	return writeOutput(data, opts.output)
}
