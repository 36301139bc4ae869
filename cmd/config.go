package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mouse-blink/snapscope/internal/domain"
	m "github.com/mouse-blink/snapscope/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "snapscope"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	baseFlagName         = "base"
	failuresFileFlagName = "failures-file"
	approvedFileFlagName = "approved-file"
	summaryFlagName      = "summary"
	resultFileFlagName   = "result"
	outFileFlagName      = "out"
	verboseFlagName      = "verbose"
	logFileFlagName      = "log-file"

	baseConfigKey       = "analyze.base"
	repoRootKey         = "paths.repo_root"
	appPrefixKey        = "paths.app_prefix"
	specRootKey         = "paths.spec_root"
	specSuffixesKey     = "paths.spec_suffixes"
	snapshotDirNameKey  = "paths.snapshot_dir_name"
	minSnapshotBytesKey = "update.min_snapshot_bytes"
	runnerCommandKey    = "update.runner_command"

	defaultBaseRef          = "origin/main"
	defaultRepoRoot         = "."
	defaultAppPrefix        = "src"
	defaultSpecRoot         = "src"
	defaultSnapshotDirName  = "__image_snapshots__"
	defaultMinSnapshotBytes = 100

	envPrefix = "SNAPSCOPE"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".snapscope.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

// defaultSpecSuffixes identify visual test spec files.
var defaultSpecSuffixes = []string{".spec.tsx", ".spec.ts", ".spec.jsx", ".spec.js"}

// defaultRunnerCommand invokes the snapshot runner in update mode; the
// spec file path is appended per invocation.
var defaultRunnerCommand = []string{"npx", "jest", "--ci", "--updateSnapshot"}

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
	viper.SetDefault(baseConfigKey, defaultBaseRef)
	viper.SetDefault(repoRootKey, defaultRepoRoot)
	viper.SetDefault(appPrefixKey, defaultAppPrefix)
	viper.SetDefault(specRootKey, defaultSpecRoot)
	viper.SetDefault(specSuffixesKey, defaultSpecSuffixes)
	viper.SetDefault(snapshotDirNameKey, defaultSnapshotDirName)
	viper.SetDefault(minSnapshotBytesKey, defaultMinSnapshotBytes)
	viper.SetDefault(runnerCommandKey, defaultRunnerCommand)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

// projectFromConfig builds the repository layout description from the
// active configuration.
func projectFromConfig() domain.Project {
	return domain.Project{
		RepoRoot:         m.Path(viper.GetString(repoRootKey)),
		AppPrefix:        viper.GetString(appPrefixKey),
		SpecRoot:         viper.GetString(specRootKey),
		SpecSuffixes:     viper.GetStringSlice(specSuffixesKey),
		SnapshotDirName:  viper.GetString(snapshotDirNameKey),
		MinSnapshotBytes: viper.GetInt64(minSnapshotBytesKey),
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

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger. Diagnostics go to
// a rolling file, never to stdout: stdout carries only the JSON report.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
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
