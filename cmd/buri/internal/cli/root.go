// Package cli implements the buri command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	goburi "github.com/albertocavalcante/go-buri"
	"github.com/albertocavalcante/go-buri/internal/log"
	"github.com/albertocavalcante/go-buri/manifest"
	"github.com/albertocavalcante/go-buri/workspace"
)

// Version information (set via ldflags)
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// EnvWorkspace overrides the default of --workspace.
const EnvWorkspace = "BURI_WORKSPACE"

// fsys is the filesystem commands read from; tests swap in a MemMapFs.
var fsys afero.Fs = afero.NewOsFs()

// globalFlags holds persistent flags that apply to all commands
var globalFlags struct {
	workspace  string
	verbosity  int
	logFormat  string
	maxTargets int
	strict     bool
}

var rootCmd = &cobra.Command{
	Use:   "buri",
	Short: "Resolve build orders from BUILD manifests",
	Long: `Buri reads the BUILD.toml (or BUILD, BUILD.bazel, BUILD.hcl) manifest of
each directory, follows library dependencies from a root target, and prints
the targets in build order: every dependency before its dependents.

Labels are relative to the workspace root, the nearest directory containing
WORKSPACE.toml:

  foo/bar:baz   library "baz" in foo/bar
  foo/bar       library "bar" in foo/bar
  :baz          library "baz" at the workspace root`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "buri %s (%s)\n", Version, GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVarP(&globalFlags.workspace, "workspace", "w", os.Getenv(EnvWorkspace),
		"Directory inside the workspace (default: current directory, or $"+EnvWorkspace+")")
	rootCmd.PersistentFlags().IntVarP(&globalFlags.verbosity, "verbosity", "v", 1,
		"Verbosity level (0=error, 1=warn, 2=info, 3=debug, 4=trace)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.logFormat, "log-format", log.FormatText,
		"Log format (text, json)")
	rootCmd.PersistentFlags().IntVar(&globalFlags.maxTargets, "max-targets", 0,
		"Fail if a resolution expands more targets (0 = unlimited)")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.strict, "strict", false,
		"Reject manifests with duplicate or unnamed libraries")

	cobra.OnInitialize(initLogging)
}

// initLogging applies CLI flags to the logger.
func initLogging() {
	log.Init(globalFlags.verbosity, globalFlags.logFormat)
}

// openWorkspace locates the workspace enclosing --workspace or the working directory.
func openWorkspace() (*workspace.Workspace, error) {
	start := globalFlags.workspace
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		start = wd
	}
	ws, err := workspace.Open(fsys, start)
	if err != nil {
		return nil, err
	}
	log.Info("workspace found", "root", ws.Root, "name", ws.Name)
	return ws, nil
}

// newResolver builds a resolver over the workspace's manifests.
func newResolver(ws *workspace.Workspace) (*goburi.Resolver, error) {
	src := manifest.NewFSSource(fsys, ws.Root)
	var loaderOpts []manifest.LoaderOption
	if globalFlags.strict {
		loaderOpts = append(loaderOpts, manifest.WithValidation())
	}
	log.Debug("creating resolver", "root", ws.Root, "strict", globalFlags.strict, "max_targets", globalFlags.maxTargets)
	return goburi.NewResolver(nil,
		goburi.WithCache(manifest.NewCache(manifest.NewLoader(src, loaderOpts...))),
		goburi.WithLogger(log.Component("resolver")),
		goburi.WithMaxTargets(globalFlags.maxTargets),
	)
}

// Execute runs the root command.
func Execute() {
	if err := ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
