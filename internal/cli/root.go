package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool

	outputFlag      string
	formatsFlag     []string
	hierarchyFlag   bool
	projectTypeFlag string
	pluginDirFlag   string
	printFlag       bool
	directPDFFlag   bool
	watchFlag       bool
	quietFlag       bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dirmap [root_dir]",
	Short: "Map a directory tree and the entity hierarchy of the project inside it",
	Long: `dirmap writes the directory structure of root_dir (default: the current
directory) to text and structured files. With --hierarchy it also extracts the
entity hierarchy of the project: Verilog module instantiations, Python and
Java inheritance, React component composition or SQL foreign keys.

Examples:
  # Directory tree as directory_structure.txt and directory_structure.json
  dirmap

  # Verilog module hierarchy of ./rtl, also printed to the terminal
  dirmap ./rtl --hierarchy -p verilog --print

  # Python class hierarchy as YAML and SQLite
  dirmap ./src --hierarchy -p python -f yaml,sqlite -o classes

  # Java class hierarchy as a Word document and a PDF
  dirmap ./src --hierarchy -p java -f docx,pdf --direct-pdf

  # Rebuild the hierarchy whenever a source file changes
  dirmap ./rtl --hierarchy --watch
`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file, YAML or JSON (default is <root_dir>/.dirmap.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "base name for the output files, without extension (default \"directory_structure\")")
	rootCmd.Flags().StringSliceVarP(&formatsFlag, "formats", "f", nil, "output formats: txt, json, yaml, sqlite, docx, pdf")
	rootCmd.Flags().BoolVar(&hierarchyFlag, "hierarchy", false, "enable hierarchy extraction")
	rootCmd.Flags().StringVarP(&projectTypeFlag, "project-type", "p", "", "project type for hierarchy extraction (see 'dirmap types')")
	rootCmd.Flags().StringVar(&pluginDirFlag, "plugin-dir", "", "directory of pattern plugin definitions")
	rootCmd.Flags().BoolVar(&printFlag, "print", false, "print the hierarchy to the terminal")
	rootCmd.Flags().BoolVar(&directPDFFlag, "direct-pdf", false, "draw the PDF from the hierarchy instead of the text report")
	rootCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "rebuild the hierarchy when source files change")
	rootCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "disable progress bars and non-error output")
}

func runRoot(cmd *cobra.Command, args []string) error {
	opts := runOptions{
		RootDir:     ".",
		ConfigFile:  cfgFile,
		Output:      outputFlag,
		Hierarchy:   hierarchyFlag,
		ProjectType: projectTypeFlag,
		PluginDir:   pluginDirFlag,
		Print:       printFlag,
		DirectPDF:   directPDFFlag,
		Watch:       watchFlag,
		Quiet:       quietFlag,
		Verbose:     verbose,
	}
	if len(args) == 1 {
		opts.RootDir = args[0]
	}
	if cmd.Flags().Changed("formats") {
		opts.Formats = formatsFlag
	}

	// Set up context with cancellation for Ctrl+C
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return run(ctx, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
