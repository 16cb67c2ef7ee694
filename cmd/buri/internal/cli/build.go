package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	goburi "github.com/albertocavalcante/go-buri"
	"github.com/albertocavalcante/go-buri/internal/log"
	"github.com/albertocavalcante/go-buri/label"
)

var buildFlags struct {
	filesOnly bool
}

var buildCmd = &cobra.Command{
	Use:   "build <label>...",
	Short: "Print the build order of one or more targets",
	Long: `Resolves each target's dependencies and prints the targets in build
order with their source files. With several labels, each is resolved
independently and printed under its own heading.

Use --files to print only the source files, one per line, in build order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&buildFlags.filesOnly, "files", false,
		"Print only source files in build order")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	roots, err := parseLabels(args)
	if err != nil {
		return err
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	r, err := newResolver(ws)
	if err != nil {
		return err
	}

	log.Debug("resolving", "roots", len(roots))
	orders, err := r.ResolveAll(cmd.Context(), roots)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, order := range orders {
		log.Info("resolved", "root", roots[i].String(), "targets", len(order))
		if buildFlags.filesOnly {
			for _, f := range goburi.Files(order) {
				fmt.Fprintln(out, f)
			}
			continue
		}
		if len(orders) > 1 {
			fmt.Fprintf(out, "# %s\n", roots[i])
		}
		for _, tf := range order {
			log.Trace("target", "label", tf.Target.String(), "files", len(tf.Files), "dependencies", len(tf.Dependencies))
			fmt.Fprintf(out, "%s\t%s\n", tf.Target, strings.Join(tf.Files, " "))
		}
	}
	return nil
}

// parseLabels parses command-line labels, dropping repeats of the same target.
func parseLabels(args []string) ([]label.Target, error) {
	roots := make([]label.Target, 0, len(args))
	seen := make(map[string]bool, len(args))
	for _, arg := range args {
		t, err := label.Parse(arg)
		if err != nil {
			return nil, err
		}
		if seen[t.Key()] {
			log.Warn("duplicate label ignored", "label", arg, "target", t.String())
			continue
		}
		seen[t.Key()] = true
		roots = append(roots, t)
	}
	return roots, nil
}
