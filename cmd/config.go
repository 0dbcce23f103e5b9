package cmd

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "bindport"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	catalogFlagName     = "catalog"
	sourceFlagName      = "src"
	outputFlagName      = "out"
	reportsFlagName     = "reports"
	excludeFlagName     = "exclude"
	runParallelFlagName = "parallel"
	verboseFlagName     = "verbose"

	catalogConfigKey     = "catalog"
	sourceConfigKey      = "paths.source"
	outputConfigKey      = "paths.output"
	reportsConfigKey     = "paths.reports"
	excludeConfigKey     = "paths.exclude"
	runParallelConfigKey = "run.parallel"

	defaultSourceDir   = "."
	defaultOutputDir   = "ported"
	defaultReportsDir  = ".bindport-reports"
	defaultRunParallel = 1

	envPrefix = "BINDPORT"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".bindport.log"
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(catalogConfigKey, "")
	viper.SetDefault(sourceConfigKey, defaultSourceDir)
	viper.SetDefault(outputConfigKey, defaultOutputDir)
	viper.SetDefault(reportsConfigKey, defaultReportsDir)
	viper.SetDefault(excludeConfigKey, []string{})
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Failed to read config file", "file", configFileName, "error", err)
		}
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Numeric slog levels are accepted too (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger installs the global slog logger writing to a rotated file.
//
// It logs at the configured level, or at Debug when verbose is set.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	logLevel := slog.LevelDebug
	if !verbose {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
