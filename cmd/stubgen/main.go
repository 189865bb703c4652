package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/stubgen/cmd/stubgen/commands"
	"github.com/teranos/stubgen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "stubgen",
	Short: "stubgen - PEP-484 stub generator for Java packages",
	Long: `stubgen - Generate Python type stubs (.pyi) for Java packages.

stubgen reflects Java classes through a child JVM and emits PEP-484 stub
packages so that Python code calling into Java through the interop layer
gets autocompletion and static type checking.

Examples:
  stubgen generate java.util                      # stubs for java.util and subpackages
  stubgen generate -c 'lib/*.jar' com.example     # reflect classes from jars
  stubgen generate -o stubs --no-javadoc org.w3c  # skip docstrings
  stubgen version                                 # show build information`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "Log in JSON lines instead of console format")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
