// Command acpigen generates ACPI tables from a platform description.
package main

import (
	"fmt"
	"os"

	"acpigen/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.1.0-dev"

// app holds the state shared by all subcommands.
type app struct {
	verbose bool
	logger  *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[acpigen] error: %s\n", err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "acpigen",
		Short:         "Generate ACPI tables and AML bytecode",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(a.verbose)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every generated table")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newBuildCmd(a))
	root.AddCommand(newInspectCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "acpigen %s\n", version)
		},
	}
}
