package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/tKV/cmd/bench"
	"github.com/ValentinKolb/tKV/cmd/shell"
	"github.com/ValentinKolb/tKV/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands.
	// Without a subcommand the interactive shell is started.
	RootCmd = &cobra.Command{
		Use:   "tkv",
		Short: "typed in-memory key-value store",
		Long: fmt.Sprintf(`tKV (v%s)

An in-memory, type-aware key-value store driven by a line based command language.
Values are stored together with their type (str, int, float, bool).

Run without a subcommand to start the shell.`, Version),
		PersistentPreRunE: util.Setup,
		RunE:              shell.RunE,
		SilenceUsage:      true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of tKV",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tKV v%s\n", Version)
		},
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(shell.ShellCmd)
	RootCmd.AddCommand(bench.BenchCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	util.SetupGlobalFlags(RootCmd)
	shell.SetupShellFlags(RootCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
