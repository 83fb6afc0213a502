// Package cmd provides the root command and CLI setup for entfix.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"entfix.dev/pkg/entfix/internal/adapter"
	"entfix.dev/pkg/entfix/internal/controller"
	"entfix.dev/pkg/entfix/internal/domain"
	m "entfix.dev/pkg/entfix/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var processor domain.Processor
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// excludePatterns is a root-level flag listing file names that are never rewritten.
var excludePatterns []string

// limitFlag caps how many files one batch processes.
var limitFlag int

// verboseFlag switches the log file to debug level.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore()
	processor = domain.NewProcessor(fsAdapter)
	workflow = domain.NewWorkflow(fsAdapter, reportStore, ui, processor)
}

const rootLongDescription = `Entfix migrates the generated entity test files from the legacy axios mock
boilerplate to the shared createEntityTestSetup fixture helper.

Each file is rewritten by an ordered list of pattern rules: imports, call
sites, mock response shapes, then call assertions. Files already using the
fixture pattern are skipped, excluded file names are never touched, and one
batch rewrites at most the configured number of files.`

const dirArgHelp = `The optional [dir] argument overrides the configured test directory
(paths.tests, default test/entities).`

const runLongDescription = `Run one migration batch over the test directory.

` + dirArgHelp

const listLongDescription = `List candidate files and the rewrite rules a batch would apply, without
writing anything.

` + dirArgHelp

const scanLongDescription = `Show the migration status of every test file, excluded names included.

` + dirArgHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entfix",
		Short: "Migrate entity test files to the fixture helper API",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for migration run reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "file name that is never rewritten (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().IntVarP(&limitFlag, limitFlagName, "n", viper.GetInt(limitConfigKey), "maximum number of files processed per batch")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(limitFlagName), limitConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log per-rule outcomes at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// resolveRoot picks the test directory: explicit argument first, configured
// default otherwise.
func resolveRoot(args []string) m.Path {
	if len(args) > 0 {
		return m.Path(args[0])
	}

	return m.Path(viper.GetString(testsDirConfigKey))
}
