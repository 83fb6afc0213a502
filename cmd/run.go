package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"entfix.dev/pkg/entfix/internal/domain"
	m "entfix.dev/pkg/entfix/internal/model"
)

var runDryRunFlag bool

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [dir]",
		Short: "Run one migration batch",
		Long:  runLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Migrate(context.Background(), domain.MigrateArgs{
				Root:    resolveRoot(args),
				Exclude: viper.GetStringSlice(excludeConfigKey),
				Limit:   viper.GetInt(limitConfigKey),
				DryRun:  runDryRunFlag,
				Reports: m.Path(viper.GetString(outputFlagName)),
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&runDryRunFlag, dryRunFlagName, false, "show diffs instead of writing files")
}
