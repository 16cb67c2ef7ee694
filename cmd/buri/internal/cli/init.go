package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/albertocavalcante/go-buri/workspace"
)

var initFlags struct {
	name string
}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a new workspace",
	Long: `Writes WORKSPACE.toml in path (default: current directory).
Fails if the directory already has one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initFlags.name, "name", "n", "",
		"Workspace name (defaults to directory name)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "." {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}

	name := initFlags.name
	if name == "" {
		name = filepath.Base(dir)
	}

	ws, err := workspace.Init(fsys, dir, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s (name %q)\n", filepath.Join(ws.Root, workspace.FileName), ws.Name)
	return nil
}
