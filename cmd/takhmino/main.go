package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/takhmino/takhmino/internal/config"
	"github.com/takhmino/takhmino/internal/runlog"
	"github.com/takhmino/takhmino/internal/server"
	"github.com/takhmino/takhmino/internal/tools"
	"github.com/takhmino/takhmino/internal/tracing"
	"github.com/takhmino/takhmino/pkg/constants"
	"github.com/takhmino/takhmino/pkg/output"
	"github.com/takhmino/takhmino/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
	case "json":
		zapConfig = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)

	// Logs go to stderr so CLI results on stdout stay machine-readable.
	zapConfig.OutputPaths = []string{"stderr"}
	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}
		file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		}
		_ = file.Close()

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

// loadConfiguration reads the config file, falling back to defaults plus
// environment overrides when the default file is absent.
func loadConfiguration(path string, explicit bool) (*config.Configuration, error) {
	conf, err := config.LoadConfiguration(path)
	if err == nil {
		return conf, nil
	}
	if _, statErr := os.Stat(path); !explicit && errors.Is(statErr, fs.ErrNotExist) {
		return config.LoadEnvironment()
	}
	return nil, err
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	tool := flag.String("tool", "", fmt.Sprintf("calculator to run: %v", tools.Names()))
	inputPath := flag.String("input", "-", "path to the YAML request, - reads stdin")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	localeFlag := flag.String("locale", "", "display locale override, e.g. fa-IR or en")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	save := flag.Bool("save", false, "save the run to the run log")
	serve := flag.Bool("serve", false, "serve the HTTP API instead of running one calculator")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to the HTTP server configuration file")
	flag.Parse()

	// Load .env file if it exists
	_ = godotenv.Load()

	explicitConfig := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicitConfig = true
		}
	})

	conf, err := loadConfiguration(*configLocation, explicitConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": %q}\n", *configLocation, err.Error())
		os.Exit(1)
	}

	var serverConf *server.Config
	loggingConf := conf.Logging
	if *serve {
		serverConf, err = server.LoadConfig(*serverConfigLocation)
		if err != nil {
			fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": %q}\n", *serverConfigLocation, err.Error())
			os.Exit(1)
		}
		if serverConf.Logging.Level != "" {
			loggingConf.Level = serverConf.Logging.Level
		}
		if serverConf.Logging.Format != "" {
			loggingConf.Format = serverConf.Logging.Format
		}
		if serverConf.Logging.OutputFile != "" {
			loggingConf.OutputFile = serverConf.Logging.OutputFile
		}
	}

	logger, err := initializeLogger(loggingConf, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": %q}\n", err.Error())
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := tracing.Init(ctx, conf.Tracing, version, logger)
	if err != nil {
		logger.Fatal("failed to initialize tracing",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("failed to flush traces", zap.String("op", "main"), zap.Error(err))
		}
	}()

	var runs *runlog.Repository
	if conf.Database.Enabled() {
		runs, err = runlog.Open(conf.Database.Driver, conf.Database.DSN, logger)
		if err != nil {
			logger.Fatal("failed to open run log",
				zap.String("op", "main"),
				zap.String("driver", conf.Database.Driver),
				zap.Error(err),
			)
		}
		defer func() {
			if err := runs.Close(); err != nil {
				logger.Warn("failed to close run log", zap.String("op", "main"), zap.Error(err))
			}
		}()
	}

	if *serve {
		if err := runServer(ctx, logger, conf, serverConf, runs); err != nil {
			logger.Fatal("server stopped",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(), zap.String("op", "main"))
	}
	locale := conf.Output.Locale
	if *localeFlag != "" {
		locale = *localeFlag
	}
	if err := validation.ValidateLocale(locale); err != nil {
		logger.Fatal(err.Error(), zap.String("op", "main"))
	}

	if err := runTool(ctx, logger, conf, *tool, *inputPath, outputFormat, locale, *save, runs); err != nil {
		logger.Fatal("failed to run calculator",
			zap.String("op", "main"),
			zap.String("tool", *tool),
			zap.Error(err),
		)
	}
}

func runTool(ctx context.Context, logger *zap.Logger, conf *config.Configuration, tool, inputPath, outputFormat, locale string, save bool, runs *runlog.Repository) error {
	in := io.Reader(os.Stdin)
	if inputPath != "-" {
		file, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer file.Close()
		in = file
	}

	outcome, err := tools.NewRunner(logger, conf.Gold).RunYAML(tool, in)
	if err != nil {
		return err
	}
	for _, warning := range outcome.Warnings {
		logger.Warn("Input warning: "+warning, zap.String("op", "main"))
	}

	if err := output.NewWriter(os.Stdout, outputFormat, locale).Render(outcome.Result); err != nil {
		return err
	}

	if !save {
		return nil
	}
	if runs == nil {
		logger.Warn("run history is not configured, the run was not saved", zap.String("op", "main"))
		return nil
	}
	raw, err := json.Marshal(outcome.Result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	summary := outcome.Summary
	if len(summary) > validation.MaxSummaryLength {
		summary = summary[:validation.MaxSummaryLength]
	}
	run := &runlog.ToolRun{
		ToolSlug: outcome.Tool,
		ToolName: tools.Name(outcome.Tool),
		Version:  version,
		RawData:  string(raw),
		Summary:  summary,
	}
	if err := runs.Create(ctx, run); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	logger.Info("run saved",
		zap.String("op", "main"),
		zap.String("run_id", run.ID.String()),
	)
	return nil
}

func runServer(ctx context.Context, logger *zap.Logger, conf *config.Configuration, serverConf *server.Config, runs *runlog.Repository) error {
	opts := server.Options{
		Logger:      logger,
		MaxBodySize: int64(serverConf.MaxBodySize),
		Version:     serverConf.Version,
		Gold:        conf.Gold,
	}
	if runs != nil {
		opts.Runs = runs
	}
	if conf.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     conf.Redis.Addr,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
		defer client.Close()
		opts.Limiter = server.NewRateLimiter(client, conf.Redis.RateLimit, conf.Redis.Window, logger)
	}

	srv := &http.Server{
		Addr:              serverConf.Address,
		Handler:           server.NewHandler(opts),
		ReadHeaderTimeout: serverConf.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving HTTP API",
			zap.String("op", "main"),
			zap.String("address", serverConf.Address),
			zap.Stringer("max_body_size", serverConf.MaxBodySize),
			zap.String("version", serverConf.Version),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverConf.ShutdownTimeout)
	defer cancel()
	logger.Info("shutting down HTTP API", zap.String("op", "main"))
	return srv.Shutdown(shutdownCtx)
}
