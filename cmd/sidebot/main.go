// Command sidebot is a terminal dashboard over the restaurant tips dataset
// with a chat pane that answers questions about the data.
//
// Usage:
//
//	GEMINI_API_KEY=gk-...    sidebot [flags]
//	ANTHROPIC_API_KEY=sk-... sidebot [flags]
//
// Flags:
//
//	-provider string      Provider: gemini, anthropic (auto-detected from env vars if omitted)
//	-model string         Model ID (default: provider default)
//	-api-key string       API key (overrides provider's env var)
//	-data string          Path to a tips CSV file (default: built-in sample)
//	-system-prompt string Path to system prompt template (default: .sidebot/prompt.md)
//	-config string        Path to TOML config file (default: sidebot.toml)
//	-log string           Path to log file (default: no logging)
//	-transcript string    Path to write the chat transcript on exit
//	-timeout duration     Completion timeout (default: 60s)
//
// The config file may also set max_tokens and temperature for replies.
//
// Without an API key the dashboard still runs; chat replies explain that no
// key is configured.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/fwojciec/sidebot"
	bt "github.com/fwojciec/sidebot/bubbletea"
	"github.com/fwojciec/sidebot/csv"
	sbjson "github.com/fwojciec/sidebot/json"
	"github.com/fwojciec/sidebot/sqlite"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const defaultPromptPath = ".sidebot/prompt.md"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sidebot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		providerFlag = flag.String("provider", "", "Provider: gemini, anthropic (auto-detected from env vars if omitted)")
		model        = flag.String("model", "", "Model ID (provider-specific)")
		apiKey       = flag.String("api-key", "", "API key (overrides provider's env var)")
		dataPath     = flag.String("data", "", "Path to a tips CSV file (default: built-in sample)")
		promptPath   = flag.String("system-prompt", "", "Path to system prompt template (default: "+defaultPromptPath+")")
		configPath   = flag.String("config", defaultConfigPath, "Path to TOML config file")
		logPath      = flag.String("log", "", "Path to log file")
		transcript   = flag.String("transcript", "", "Path to write the chat transcript on exit")
		timeout      = flag.Duration("timeout", 0, "Completion timeout (default 60s)")
	)
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	fileCfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	cfg := fileCfg.merge(config{
		Provider:     *providerFlag,
		Model:        *model,
		Data:         *dataPath,
		SystemPrompt: *promptPath,
		Log:          *logPath,
		Transcript:   *transcript,
	})
	if *timeout > 0 {
		cfg.Timeout = timeout.String()
	}
	callTimeout, err := cfg.timeout(sidebot.DefaultTimeout)
	if err != nil {
		return err
	}
	if err := cfg.checkLimits(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ds, err := loadDataset(cfg.Data)
	if err != nil {
		return err
	}
	template, err := loadPromptTemplate(cfg.SystemPrompt)
	if err != nil {
		return err
	}
	session := sidebot.NewSession(ds, sidebot.SystemPrompt(ds, template))

	db, err := sqlite.Open(ctx, ds)
	if err != nil {
		return fmt.Errorf("load dataset into sqlite: %w", err)
	}
	defer db.Close()

	pc, err := resolveConfig(cfg.Provider, *apiKey,
		os.Getenv("ANTHROPIC_API_KEY"), os.Getenv("GEMINI_API_KEY"))
	if err != nil {
		return err
	}
	completer, err := newCompleter(ctx, pc)
	if err != nil {
		return err
	}
	if completer == nil {
		logger.Warn("no API key configured; chat is disabled", zap.String("provider", pc.name))
	}

	logger.Info("session started",
		zap.String("session", session.ID),
		zap.String("provider", pc.name),
		zap.String("model", cfg.Model),
		zap.Int("rows", ds.Len()),
		zap.Duration("timeout", callTimeout))

	handler := sidebot.NewHandler(session.Transcript, completer,
		sidebot.WithSystemPrompt(session.SystemPrompt),
		sidebot.WithModel(cfg.Model),
		sidebot.WithMaxTokens(cfg.MaxTokens),
		sidebot.WithTemperature(cfg.Temperature),
		sidebot.WithTimeout(callTimeout),
		sidebot.WithLogger(logger.With(zap.String("session", session.ID))))

	m := bt.New(session, handler, db, sidebot.DefaultTheme())
	if err := bt.Run(ctx, m); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}

	if cfg.Transcript != "" {
		if err := sbjson.Save(cfg.Transcript, session); err != nil {
			return fmt.Errorf("save transcript: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Transcript saved to %s\n", cfg.Transcript)
	}
	logger.Info("session ended", zap.Int("turns", session.Transcript.Len()))
	return nil
}

// newLogger writes JSON logs to path. The terminal belongs to the dashboard,
// so without a path nothing is logged.
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger, nil
}

func loadDataset(path string) (*sidebot.Dataset, error) {
	if path == "" {
		return csv.Sample()
	}
	return csv.Load(path)
}

// loadPromptTemplate reads the system prompt template. An empty path tries
// the default location and falls back to the built-in template when it does
// not exist; other errors are returned.
func loadPromptTemplate(path string) (string, error) {
	explicit := path != ""
	if !explicit {
		path = defaultPromptPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		return string(data), nil
	case errors.Is(err, os.ErrNotExist) && !explicit:
		return sidebot.DefaultPromptTemplate, nil
	default:
		return "", fmt.Errorf("read system prompt: %w", err)
	}
}
