package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/temirov/gitstatus/internal/execshell"
	"github.com/temirov/gitstatus/internal/gitrepo"
	"github.com/temirov/gitstatus/internal/reporting"
	"github.com/temirov/gitstatus/internal/repos/discovery"
	"github.com/temirov/gitstatus/internal/repos/filesystem"
	"github.com/temirov/gitstatus/internal/status"
	"github.com/temirov/gitstatus/internal/ui"
	flagutils "github.com/temirov/gitstatus/internal/utils/flags"
)

const (
	statusUseConstant              = "git-status [path ...]"
	statusShortDescriptionConstant = "Report uncommitted changes and branch divergence across Git repositories"
	statusLongDescriptionConstant  = "git-status finds every Git repository enclosing or beneath the given paths and reports uncommitted changes, branches without an upstream, and branches that are ahead of or behind their upstream."
	formatFlagNameConstant         = "format"
	formatFlagDescriptionConstant  = "Report format."
	colorFlagNameConstant          = "color"
	colorFlagDescriptionConstant   = "Colorize text output."
	jobsFlagNameConstant           = "jobs"
	jobsFlagShorthandConstant      = "j"
	jobsFlagDescriptionConstant    = "Number of repositories analyzed concurrently"
	invalidJobsTemplateConstant    = "--jobs must be at least 1, got %d"
	scanSummaryMessageConstant     = "Scan finished"
	logFieldReportsConstant        = "reports"
	logFieldInputErrorsConstant    = "invalid_roots"
	logFieldSkippedConstant        = "skipped_repositories"
	printerFinishFailureTemplate   = "unable to finish report output: %w"
	printerBeginFailureTemplate    = "unable to start report output: %w"
)

var (
	formatChoices = []string{string(reporting.FormatText), string(reporting.FormatYAML), string(reporting.FormatJSON)}
	colorChoices  = []string{string(reporting.ColorAuto), string(reporting.ColorAlways), string(reporting.ColorNever)}
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// StatusCommandBuilder assembles the command that scans roots and prints repository reports.
type StatusCommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() StatusConfiguration
	GitRunner                    execshell.CommandRunner
}

type statusFlagValues struct {
	paths  *flagutils.PathFlagValues
	format *flagutils.ChoiceValue
	color  *flagutils.ChoiceValue
	jobs   int
}

type statusSettings struct {
	options        status.Options
	format         reporting.Format
	color          reporting.ColorMode
	untrackedFiles gitrepo.UntrackedFilesMode
}

// Build constructs the status command.
func (builder *StatusCommandBuilder) Build() *cobra.Command {
	flagValues := &statusFlagValues{}

	command := &cobra.Command{
		Use:   statusUseConstant,
		Short: statusShortDescriptionConstant,
		Long:  statusLongDescriptionConstant,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, arguments, flagValues)
		},
	}

	flagValues.paths = flagutils.BindPathFlags(command, flagutils.PathFlagValues{}, flagutils.PathFlagDefinition{})
	flagValues.format = flagutils.BindChoiceFlag(command.Flags(), formatFlagNameConstant, "", string(reporting.FormatText), formatChoices, formatFlagDescriptionConstant)
	flagValues.color = flagutils.BindChoiceFlag(command.Flags(), colorFlagNameConstant, "", string(reporting.ColorAuto), colorChoices, colorFlagDescriptionConstant)
	command.Flags().IntVarP(&flagValues.jobs, jobsFlagNameConstant, jobsFlagShorthandConstant, 1, jobsFlagDescriptionConstant)

	return command
}

func (builder *StatusCommandBuilder) run(command *cobra.Command, arguments []string, flagValues *statusFlagValues) error {
	settings, settingsError := builder.resolveSettings(command, arguments, flagValues)
	if settingsError != nil {
		return settingsError
	}

	logger := resolveLogger(builder.LoggerProvider)

	service, serviceError := builder.buildService(logger, settings.untrackedFiles)
	if serviceError != nil {
		return serviceError
	}

	printer, printerError := reporting.NewPrinter(settings.format, command.OutOrStdout(), settings.color)
	if printerError != nil {
		return printerError
	}

	if beginError := printer.Begin(); beginError != nil {
		return fmt.Errorf(printerBeginFailureTemplate, beginError)
	}

	scanResult, scanError := service.Scan(command.Context(), settings.options, printer)

	logger.Debug(scanSummaryMessageConstant,
		zap.Int(logFieldReportsConstant, len(scanResult.Reports)),
		zap.Int(logFieldInputErrorsConstant, len(scanResult.InputErrors)),
		zap.Int(logFieldSkippedConstant, len(scanResult.SkippedRepositories)),
	)

	if finishError := printer.Finish(); finishError != nil {
		scanError = multierr.Append(scanError, fmt.Errorf(printerFinishFailureTemplate, finishError))
	}
	return scanError
}

func (builder *StatusCommandBuilder) resolveSettings(command *cobra.Command, arguments []string, flagValues *statusFlagValues) (statusSettings, error) {
	var configuration StatusConfiguration
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	settings := statusSettings{
		options: status.Options{
			Roots: append([]string{}, configuration.Paths...),
			Jobs:  configuration.Jobs,
		},
		format:         configuration.Format,
		color:          configuration.Color,
		untrackedFiles: configuration.UntrackedFiles,
	}

	flagSet := command.Flags()
	if flagSet.Changed(flagutils.DefaultPathFlagName) {
		settings.options.Roots = append([]string{}, flagValues.paths.Paths...)
	}
	settings.options.Roots = append(settings.options.Roots, arguments...)

	if flagSet.Changed(formatFlagNameConstant) {
		settings.format = reporting.Format(flagValues.format.String())
	}
	if flagSet.Changed(colorFlagNameConstant) {
		settings.color = reporting.ColorMode(flagValues.color.String())
	}
	if flagSet.Changed(jobsFlagNameConstant) {
		settings.options.Jobs = flagValues.jobs
	}
	if settings.options.Jobs < 1 {
		return statusSettings{}, fmt.Errorf(invalidJobsTemplateConstant, settings.options.Jobs)
	}

	return settings, nil
}

func (builder *StatusCommandBuilder) buildService(logger *zap.Logger, untrackedFiles gitrepo.UntrackedFilesMode) (*status.Service, error) {
	gitRunner := builder.GitRunner
	if gitRunner == nil {
		gitRunner = execshell.NewOSCommandRunner()
	}

	var shellExecutor *execshell.ShellExecutor
	var executorError error
	if builder.humanReadableLogging() {
		shellExecutor, executorError = execshell.NewShellExecutorWithObserver(zap.NewNop(), gitRunner, ui.NewConsoleCommandEventLogger(logger))
	} else {
		shellExecutor, executorError = execshell.NewShellExecutor(logger, gitRunner)
	}
	if executorError != nil {
		return nil, executorError
	}

	inspector, inspectorError := gitrepo.NewRepositoryInspector(shellExecutor, untrackedFiles)
	if inspectorError != nil {
		return nil, inspectorError
	}

	locator := status.NewLocator(
		filesystem.OSFileSystem{},
		gitrepo.NewRepositoryOpener(),
		discovery.NewFilesystemRepositoryDiscoverer(),
		logger,
	)

	return status.NewService(status.Dependencies{
		Locator:    locator,
		Classifier: status.NewClassifier(inspector),
		Analyzer:   status.NewAnalyzer(inspector, logger),
		Logger:     logger,
	})
}

func (builder *StatusCommandBuilder) humanReadableLogging() bool {
	if builder.HumanReadableLoggingProvider == nil {
		return false
	}
	return builder.HumanReadableLoggingProvider()
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
