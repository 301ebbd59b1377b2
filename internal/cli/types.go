package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// typesCmd lists the registered project types
var typesCmd = &cobra.Command{
	Use:   "types [root_dir]",
	Short: "List the project types hierarchy extraction supports",
	Long: `List the built-in project types and any pattern plugins configured for
root_dir (default: the current directory), with the file extensions each reads.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTypes,
}

func init() {
	rootCmd.AddCommand(typesCmd)
}

func runTypes(cmd *cobra.Command, args []string) error {
	rootDir := "."
	if len(args) == 1 {
		rootDir = args[0]
	}
	rootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(rootDir, runOptions{ConfigFile: cfgFile})
	if err != nil {
		return err
	}
	registry := newRegistry(cfg, rootDir, newLogger(verbose, cmd.ErrOrStderr()))

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tEXTENSIONS")
	for _, name := range registry.Types() {
		ex, err := registry.Resolve(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\n", name, strings.Join(ex.Extensions(), ", "))
	}
	return tw.Flush()
}
