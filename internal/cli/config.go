package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	astar "github.com/arcanis/astar-wasm"
)

const (
	configBaseName   = "astar"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	envPrefix = "ASTAR"

	gridFlagName       = "grid"
	startFlagName      = "start"
	goalFlagName       = "goal"
	colorFlagName      = "color"
	verifyFlagName     = "verify"
	mazeWidthFlagName  = "maze-width"
	mazeHeightFlagName = "maze-height"
	seedFlagName       = "seed"
	outFlagName        = "out"
	cyclesFlagName     = "cycles"
	parallelFlagName   = "parallel"
	addrFlagName       = "addr"
	modeFlagName       = "mode"
	sessionsFlagName   = "sessions"
	logFileFlagName    = "log-file"
	verboseFlagName    = "verbose"

	gridKey          = "grid"
	startKey         = "start"
	goalKey          = "goal"
	colorKey         = "color"
	mazeWidthKey     = "maze.width"
	mazeHeightKey    = "maze.height"
	mazeSeedKey      = "maze.seed"
	benchCyclesKey   = "bench.cycles"
	benchParallelKey = "bench.parallel"
	serveAddrKey     = "serve.addr"
	serveModeKey     = "serve.mode"
	serveSessionsKey = "serve.sessions"

	defaultMazeWidth     = 151
	defaultMazeHeight    = 151
	defaultMazeSeed      = 42
	defaultBenchCycles   = 100
	defaultBenchParallel = 1
	defaultServeAddr     = ":8080"
	defaultServeMode     = "release"
	defaultServeSessions = 256

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".astar.log"
	defaultLogLevel      = "info"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var errInvalidPoint = errors.New("invalid point, want X,Y")

func init() {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(gridKey, "")
	viper.SetDefault(startKey, "")
	viper.SetDefault(goalKey, "")
	viper.SetDefault(colorKey, false)
	viper.SetDefault(mazeWidthKey, defaultMazeWidth)
	viper.SetDefault(mazeHeightKey, defaultMazeHeight)
	viper.SetDefault(mazeSeedKey, defaultMazeSeed)
	viper.SetDefault(benchCyclesKey, defaultBenchCycles)
	viper.SetDefault(benchParallelKey, defaultBenchParallel)
	viper.SetDefault(serveAddrKey, defaultServeAddr)
	viper.SetDefault(serveModeKey, defaultServeMode)
	viper.SetDefault(serveSessionsKey, defaultServeSessions)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, false)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	// Running without astar.yaml is fine.
	_ = viper.ReadInConfig()
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

// configureLogger installs the global slog logger, writing to a rotated file.
//
// It logs at the configured level, or at Debug when verbose is set.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}
	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	logLevel := parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	if verbose {
		logLevel = slog.LevelDebug
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
	slog.SetDefault(slog.New(handler))
}

// parsePoint reads "X,Y".
func parsePoint(value string) (astar.Point, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(value), ",")
	if !ok {
		return astar.Point{}, fmt.Errorf("%w: %q", errInvalidPoint, value)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return astar.Point{}, fmt.Errorf("%w: %q", errInvalidPoint, value)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return astar.Point{}, fmt.Errorf("%w: %q", errInvalidPoint, value)
	}
	return astar.Pt(x, y), nil
}
