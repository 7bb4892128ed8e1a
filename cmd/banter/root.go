package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/banter"
	bt "github.com/fwojciec/banter/bubbletea"
	"github.com/fwojciec/banter/config"
	chathttp "github.com/fwojciec/banter/http"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// options holds the flag values. Only flags the user set override the
// loaded configuration.
type options struct {
	configFile string
	endpoint   string
	timeout    time.Duration
	greeting   string
	logFile    string
	logLevel   string
	altScreen  bool
}

func newRootCmd(lookupEnv func(string) (string, bool)) *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:           "banter",
		Short:         "Chat with an AI assistant in the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts, lookupEnv)
			if err != nil {
				return err
			}
			logger, closeLog, err := openLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()
			return runTUI(cmd, cfg, logger)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Path to a YAML config file")
	flags.StringVar(&opts.endpoint, "endpoint", config.DefaultEndpoint, "Chat service base URL")
	flags.DurationVar(&opts.timeout, "timeout", config.DefaultTimeout, "Per-request timeout")
	flags.StringVar(&opts.greeting, "greeting", banter.DefaultGreeting, "Opening bot message (empty to disable)")
	flags.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	flags.StringVar(&opts.logLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
	flags.BoolVar(&opts.altScreen, "alt-screen", false, "Use the terminal's alternate screen")

	root.AddCommand(newAskCmd(&opts, lookupEnv))
	return root
}

func newAskCmd(opts *options, lookupEnv func(string) (string, bool)) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <text...>",
		Short: "Send one message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, *opts, lookupEnv)
			if err != nil {
				return err
			}
			logger, closeLog, err := openLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			client := newClient(cfg, logger)
			return ask(cmd, client, strings.Join(args, " "))
		},
	}
}

// resolveConfig loads the layered configuration and applies flags the
// user set explicitly.
func resolveConfig(cmd *cobra.Command, opts options, lookupEnv func(string) (string, bool)) (config.Config, error) {
	cfg, err := config.Load(config.Sources{
		File:      opts.configFile,
		EnvFile:   config.DefaultEnvFile,
		LookupEnv: lookupEnv,
	})
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Endpoint = opts.endpoint
	}
	if flags.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
	if flags.Changed("greeting") {
		cfg.Greeting = opts.greeting
	}
	if flags.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("alt-screen") {
		cfg.AltScreen = opts.altScreen
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// openLogger returns a file logger, or a disabled one when no log file is
// configured. The terminal belongs to the TUI, so logs never go to stderr.
func openLogger(cfg config.Config) (zerolog.Logger, func(), error) {
	if cfg.LogFile == "" {
		return zerolog.Nop(), func() {}, nil
	}
	lvl, err := cfg.Level()
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	logger := zerolog.New(f).Level(lvl).With().Timestamp().Logger()
	return logger, func() { _ = f.Close() }, nil
}

func newClient(cfg config.Config, logger zerolog.Logger) *chathttp.Client {
	return chathttp.New(cfg.Endpoint,
		chathttp.WithTimeout(cfg.Timeout),
		chathttp.WithLogger(logger.With().Str("component", "http").Logger()),
	)
}

func runTUI(cmd *cobra.Command, cfg config.Config, logger zerolog.Logger) error {
	logger.Info().Str("endpoint", cfg.Endpoint).Dur("timeout", cfg.Timeout).Msg("banter started")

	var greeting banter.Message
	if cfg.Greeting != "" {
		greeting = banter.BotMessage(cfg.Greeting, time.Now())
	}
	conv := banter.NewConversation(greeting)

	tuiLogger := logger.With().Str("component", "tui").Logger()
	tuiConfig := bt.Config{Logger: &tuiLogger}
	if !clipboard.Unsupported {
		tuiConfig.Copy = clipboard.WriteAll
	}
	m := bt.New(newClient(cfg, logger), conv, banter.DefaultTheme(), tuiConfig)

	var progOpts []tea.ProgramOption
	if cfg.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if err := bt.Run(cmd.Context(), m, progOpts...); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	logger.Info().Int("messages", len(conv.History())).Msg("banter exited")
	return nil
}

// ask sends text as a single turn and prints the reply. A failed turn
// returns its diagnostic as the error.
func ask(cmd *cobra.Command, client banter.Client, text string) error {
	conv := banter.NewConversation(banter.Message{})
	turn, err := conv.Submit(text, time.Now())
	if errors.Is(err, banter.ErrEmptyInput) {
		return errors.New("nothing to send")
	}
	if err != nil {
		return err
	}

	reply, sendErr := client.Send(cmd.Context(), turn.User.Text)
	if sendErr != nil {
		bot, err := conv.Fail(turn.ID, sendErr, time.Now())
		if err != nil {
			return err
		}
		return errors.New(bot.Text)
	}
	bot, err := conv.Resolve(turn.ID, reply, time.Now())
	if err != nil {
		return err
	}
	return writeLine(cmd.OutOrStdout(), bot.Text)
}

func writeLine(w io.Writer, s string) error {
	_, err := fmt.Fprintln(w, s)
	return err
}
