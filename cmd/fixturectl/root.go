package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/fixturekit/pkg/fixture"
	"github.com/randalmurphal/fixturekit/pkg/fixture/catalog"
	"github.com/randalmurphal/fixturekit/pkg/fixture/expand"
	"github.com/randalmurphal/fixturekit/pkg/fixture/loader"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app holds state shared by the subcommands of one invocation.
type app struct {
	configFile  string
	catalogPath string
	logLevel    string
	vars        []string
	strictVars  bool

	logger  *slog.Logger
	catalog *catalog.Catalog
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "fixturectl",
		Short: "Inspect fixture files and manage a fixture catalog",
		Long: `fixturectl reads YAML, JSON and TOML fixture documents and stores them
in a SQLite catalog grouped by suite.

A fixture document has a "data" mapping and an optional "metadata" mapping.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: ./.fixturectl.yaml)")
	flags.StringVar(&a.catalogPath, "catalog", defaultCatalog, "path of the SQLite fixture catalog")
	flags.StringVar(&a.logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(
		newKeysCmd(a),
		newShowCmd(a),
		newImportCmd(a),
		newListCmd(a),
		newExportCmd(a),
		newDeleteCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration and creates the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	v, err := loadConfig(cmd, a.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.catalogPath = v.GetString(cfgKeyCatalog)

	level, err := parseLevel(v.GetString(cfgKeyLogLevel))
	if err != nil {
		return err
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// openCatalog opens the catalog on first use.
func (a *app) openCatalog() (*catalog.Catalog, error) {
	if a.catalog != nil {
		return a.catalog, nil
	}
	store, err := catalog.NewSQLiteStore(a.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", a.catalogPath, err)
	}
	a.catalog = catalog.New(store, catalog.WithLogger(a.logger))
	return a.catalog, nil
}

func (a *app) close() error {
	if a.catalog == nil {
		return nil
	}
	err := a.catalog.Store().Close()
	a.catalog = nil
	return err
}

// addVarFlags registers --var and --strict-vars on cmd.
func (a *app) addVarFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&a.vars, "var", nil, "placeholder value as name=value (repeatable)")
	cmd.Flags().BoolVar(&a.strictVars, "strict-vars", false, "fail on placeholders without a --var value")
}

// loadOptions returns loader options for the --var flags.
func (a *app) loadOptions() ([]loader.Option, error) {
	opts := []loader.Option{loader.WithLogger(a.logger)}
	if len(a.vars) == 0 {
		return opts, nil
	}

	vars := make(map[string]any, len(a.vars))
	for _, kv := range a.vars {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --var %q (expected name=value)", kv)
		}
		vars[name] = value
	}
	opts = append(opts, loader.WithVariables(vars))
	if a.strictVars {
		opts = append(opts, loader.WithMissingVariables(expand.MissingError))
	}
	return opts, nil
}

// loadFile loads a fixture file with the --var flags applied.
func (a *app) loadFile(cmd *cobra.Command, path string) (*fixture.Store, error) {
	opts, err := a.loadOptions()
	if err != nil {
		return nil, err
	}
	return loader.Load(cmd.Context(), path, opts...)
}
