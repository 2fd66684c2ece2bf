package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/gitstatus/internal/gitrepo"
	"github.com/temirov/gitstatus/internal/reporting"
	"github.com/temirov/gitstatus/internal/utils"
	flagutils "github.com/temirov/gitstatus/internal/utils/flags"
)

const (
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	statusConfigurationKeyConstant          = "status"
	statusPathsConfigKeyConstant            = statusConfigurationKeyConstant + ".paths"
	statusFormatConfigKeyConstant           = statusConfigurationKeyConstant + ".format"
	statusColorConfigKeyConstant            = statusConfigurationKeyConstant + ".color"
	statusJobsConfigKeyConstant             = statusConfigurationKeyConstant + ".jobs"
	statusUntrackedFilesConfigKeyConstant   = statusConfigurationKeyConstant + ".untracked_files"
	environmentPrefixConstant               = "GITSTATUS"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	logFlagErrorTemplateConstant            = "invalid --%s: %w"
	defaultConfigurationSearchPathConstant  = "."
	defaultJobsConstant                     = 1
)

// Version is reported by --version. Release builds set it with -ldflags "-X".
var Version = "dev"

var (
	logLevelChoices  = []string{string(utils.LogLevelDebug), string(utils.LogLevelInfo), string(utils.LogLevelWarn), string(utils.LogLevelError)}
	logFormatChoices = []string{string(utils.LogFormatStructured), string(utils.LogFormatConsole)}
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Status StatusConfiguration            `mapstructure:"status"`
}

// ApplicationCommonConfiguration stores logging configuration.
type ApplicationCommonConfiguration struct {
	LogLevel  utils.LogLevel  `mapstructure:"log_level"`
	LogFormat utils.LogFormat `mapstructure:"log_format"`
}

// StatusConfiguration holds the scan defaults that flags may override.
type StatusConfiguration struct {
	Paths          []string                   `mapstructure:"paths"`
	Format         reporting.Format           `mapstructure:"format"`
	Color          reporting.ColorMode        `mapstructure:"color"`
	Jobs           int                        `mapstructure:"jobs"`
	UntrackedFiles gitrepo.UntrackedFilesMode `mapstructure:"untracked_files"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     *flagutils.ChoiceValue
	logFormatFlagValue    *flagutils.ChoiceValue
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		logger:              zap.NewNop(),
	}

	statusBuilder := StatusCommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider: func() StatusConfiguration {
			return application.configuration.Status
		},
	}
	cobraCommand := statusBuilder.Build()

	cobraCommand.Version = Version
	cobraCommand.SilenceUsage = true
	cobraCommand.SilenceErrors = true
	cobraCommand.PersistentPreRunE = func(command *cobra.Command, arguments []string) error {
		return application.initializeConfiguration(command)
	}

	persistentFlagSet := cobraCommand.PersistentFlags()
	persistentFlagSet.StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	application.logLevelFlagValue = flagutils.BindChoiceFlag(persistentFlagSet, logLevelFlagNameConstant, "", string(utils.LogLevelError), logLevelChoices, logLevelFlagUsageConstant)
	application.logFormatFlagValue = flagutils.BindChoiceFlag(persistentFlagSet, logFormatFlagNameConstant, "", string(utils.LogFormatConsole), logFormatChoices, logFormatFlagUsageConstant)

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the root command with the provided context and flushes the logger.
func (application *Application) Execute(executionContext context.Context) error {
	executionError := application.rootCommand.ExecuteContext(executionContext)
	if syncError := utils.SyncLogger(application.logger); syncError != nil && executionError == nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application and runs it until completion or interruption.
func Execute() error {
	executionContext, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewApplication().Execute(executionContext)
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:       string(utils.LogLevelError),
		commonLogFormatConfigKeyConstant:      string(utils.LogFormatConsole),
		statusPathsConfigKeyConstant:          []string{},
		statusFormatConfigKeyConstant:         string(reporting.FormatText),
		statusColorConfigKeyConstant:          string(reporting.ColorAuto),
		statusJobsConfigKeyConstant:           defaultJobsConstant,
		statusUntrackedFilesConfigKeyConstant: string(gitrepo.UntrackedFilesNormal),
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}
	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		if levelError := application.configuration.Common.LogLevel.UnmarshalText([]byte(application.logLevelFlagValue.String())); levelError != nil {
			return fmt.Errorf(logFlagErrorTemplateConstant, logLevelFlagNameConstant, levelError)
		}
	}
	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		if formatError := application.configuration.Common.LogFormat.UnmarshalText([]byte(application.logFormatFlagValue.String())); formatError != nil {
			return fmt.Errorf(logFlagErrorTemplateConstant, logFormatFlagNameConstant, formatError)
		}
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(application.configuration.Common.LogLevel, application.configuration.Common.LogFormat)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}
	application.logger = logger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, string(application.configuration.Common.LogLevel)),
		zap.String(configurationLogFormatFieldConstant, string(application.configuration.Common.LogFormat)),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	return application.configuration.Common.LogFormat == utils.LogFormatConsole
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}
	if rootCommand := command.Root(); rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet != nil && flagSet.Changed(flagName) {
			return true
		}
	}
	return false
}
