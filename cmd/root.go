// Package cmd provides the root command and CLI setup for bindport.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"bindport.dev/pkg/bindport/internal/adapter"
	"bindport.dev/pkg/bindport/internal/controller"
	"bindport.dev/pkg/bindport/internal/domain"
	"bindport.dev/pkg/bindport/internal/emitter"
	m "bindport.dev/pkg/bindport/internal/model"
	"bindport.dev/pkg/bindport/internal/rules"
)

// workflow is built on first use so that --catalog is honoured; tests
// replace it with a mock.
var workflow domain.Workflow

// loadCatalog resolves the rule catalog for a path (empty means built-in).
var loadCatalog = rules.Load

var (
	catalogFlag  string
	sourceFlag   string
	reportsFlag  string
	excludeFlag  []string
	parallelFlag int
	verboseFlag  bool
)

const rootLongDescription = `bindport ports Java sources written against the RoboVM iOS bindings to
the Multi-OS Engine bindings.

Every .java file under the source root is parsed, rewritten by the rule
catalog and printed back with its original formatting. Rules come from the
built-in catalog unless --catalog points at a YAML file.`

const sourceArgHelp = `The source root defaults to --src (or paths.source in bindport.yaml); a
single positional argument overrides it.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bindport",
		Short: "Port RoboVM iOS binding code to Multi-OS Engine",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVar(&catalogFlag, catalogFlagName, "", "rule catalog YAML file (default: built-in catalog)")
	bindFlagToConfig(flags.Lookup(catalogFlagName), catalogConfigKey)

	flags.StringVar(&sourceFlag, sourceFlagName, defaultSourceDir, "source root scanned for .java files")
	bindFlagToConfig(flags.Lookup(sourceFlagName), sourceConfigKey)

	flags.StringVar(&reportsFlag, reportsFlagName, defaultReportsDir, "directory holding the report of the last run")
	bindFlagToConfig(flags.Lookup(reportsFlagName), reportsConfigKey)

	flags.StringArrayVarP(&excludeFlag, excludeFlagName, "x", nil, "exclude files matching regex (can be repeated)")
	bindFlagToConfig(flags.Lookup(excludeFlagName), excludeConfigKey)

	flags.IntVarP(&parallelFlag, runParallelFlagName, "p", defaultRunParallel, "number of files translated at once")
	bindFlagToConfig(flags.Lookup(runParallelFlagName), runParallelConfigKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)
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
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

// currentWorkflow returns the shared workflow, wiring it on first use.
func currentWorkflow(cmd *cobra.Command) (domain.Workflow, error) {
	if workflow != nil {
		return workflow, nil
	}

	catalog, err := loadCatalog(viper.GetString(catalogConfigKey))
	if err != nil {
		return nil, err
	}

	fsAdapter := adapter.NewLocalSourceFSAdapter()
	translator := domain.NewTranslator(adapter.NewLocalJavaFileAdapter(), fsAdapter, catalog)
	ui := controller.NewUI(cmd.Root(), controller.IsTTY(os.Stdout))

	workflow = domain.NewWorkflow(
		fsAdapter,
		adapter.NewReportStore(),
		ui,
		translator,
		emitter.New(fsAdapter),
	)

	return workflow, nil
}

// scanArgs collects the source selection shared by run, list and diff.
func scanArgs(args []string) domain.ScanArgs {
	source := viper.GetString(sourceConfigKey)
	if len(args) > 0 {
		source = args[0]
	}

	return domain.ScanArgs{
		Source:  m.Path(source),
		Exclude: viper.GetStringSlice(excludeConfigKey),
		Threads: viper.GetInt(runParallelConfigKey),
	}
}
