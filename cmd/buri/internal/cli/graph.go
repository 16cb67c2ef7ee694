package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	goburi "github.com/albertocavalcante/go-buri"
	"github.com/albertocavalcante/go-buri/internal/log"
)

var graphFlags struct {
	format string
	why    string
}

var graphCmd = &cobra.Command{
	Use:   "graph <label>",
	Short: "Show the dependency graph of a target",
	Long: `Resolves a target and prints its dependency graph.

Formats:
  text  summary and dependency tree (default)
  json  nested tree of dependencies
  dot   Graphviz digraph

Use --why <label> to list every chain from the root that includes a target.`,
	Args: cobra.ExactArgs(1),
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().StringVarP(&graphFlags.format, "format", "f", "text",
		"Output format (text, json, dot)")
	graphCmd.Flags().StringVar(&graphFlags.why, "why", "",
		"Explain why a target is included")
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	roots, err := parseLabels(args)
	if err != nil {
		return err
	}
	root := roots[0]

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	r, err := newResolver(ws)
	if err != nil {
		return err
	}
	order, err := r.Resolve(cmd.Context(), root)
	if err != nil {
		return err
	}
	g := goburi.BuildGraph(root, order)
	log.Debug("graph built", "root", root.String(), "targets", g.Len(), "format", graphFlags.format)
	out := cmd.OutOrStdout()

	if graphFlags.why != "" {
		target, err := parseLabels([]string{graphFlags.why})
		if err != nil {
			return err
		}
		chains, err := g.WhyIncluded(target[0].Key())
		if err != nil {
			return err
		}
		for _, c := range chains {
			fmt.Fprintln(out, c.String())
		}
		return nil
	}

	switch graphFlags.format {
	case "text":
		fmt.Fprint(out, g.ToText())
	case "json":
		data, err := g.ToJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	case "dot":
		fmt.Fprint(out, g.ToDOT())
	default:
		return fmt.Errorf("unknown format %q (want text, json or dot)", graphFlags.format)
	}
	return nil
}
