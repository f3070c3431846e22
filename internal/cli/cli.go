package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ontograph/pkg/buildinfo"
	"github.com/matzehuels/ontograph/pkg/config"
	"github.com/matzehuels/ontograph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "ontograph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	source     string
	refresh    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Ontograph browses and lays out an ontology registry",
		Long: `Ontograph reconciles the value chains, modules, metrics and entities of a
metadata registry into a navigable tree, scopes the full graph to a chosen
root, parses entity relationship diagrams and lays graphs out with a force
simulation.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/ontograph/config.toml)")
	flags.StringVar(&c.source, "source", "", "registry URL, mongodb:// URI or snapshot file (overrides config)")
	flags.BoolVar(&c.refresh, "refresh", false, "bypass cached registry responses")

	root.AddCommand(c.treeCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.schemaCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the config file and applies the --source override.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	if c.source == "" {
		return cfg, nil
	}
	applySource(&cfg, c.source)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applySource points cfg at the registry named by a --source value.
func applySource(cfg *config.Config, source string) {
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		cfg.Source.Kind = config.SourceHTTP
		cfg.Source.URL = source
	case strings.HasPrefix(source, "mongodb://"), strings.HasPrefix(source, "mongodb+srv://"):
		cfg.Source.Kind = config.SourceMongo
		cfg.Source.MongoURI = source
	default:
		cfg.Source.Kind = config.SourceFile
		cfg.Source.Path = source
	}
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner opens the configured registry source and wraps it in a runner.
// The returned function releases the source.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config) (*pipeline.Runner, func() error, error) {
	src, closeSrc, err := pipeline.OpenSource(ctx, cfg, pipeline.SourceOptions{
		Refresh: c.refresh,
		Logger:  c.Logger,
	})
	if err != nil {
		return nil, closeSrc, err
	}
	policy, err := cfg.Engine.Policy()
	if err != nil {
		return nil, closeSrc, err
	}

	runner := pipeline.NewRunner(src, c.Logger)
	runner.Limit = cfg.Source.Limit
	runner.Policy = policy
	return runner, closeSrc, nil
}

// =============================================================================
// Output
// =============================================================================

// writeOutput writes data to path, or to stdout when path is empty or "-".
func writeOutput(data []byte, path string) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	printSuccess("Wrote %s", path)
	printFile(path)
	return nil
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
