package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/chative-support-desk/server/internal/agent/catalog"
	"github.com/chative-support-desk/server/internal/agent/classifier"
	"github.com/chative-support-desk/server/internal/agent/escalation"
	"github.com/chative-support-desk/server/internal/agent/graph"
	"github.com/chative-support-desk/server/internal/agent/graph/conversations"
	"github.com/chative-support-desk/server/internal/agent/model"
	"github.com/chative-support-desk/server/internal/agent/repo"
	"github.com/chative-support-desk/server/internal/agent/responder"
	"github.com/chative-support-desk/server/internal/core"
	"github.com/chative-support-desk/server/internal/replay"
	"github.com/chative-support-desk/server/internal/server"
	"github.com/chative-support-desk/server/internal/telemetry"
	logx "github.com/chative-support-desk/server/pkg/logger"
	pkgredis "github.com/chative-support-desk/server/pkg/redis"
)

// AppConfig defines every configurable parameter of the support desk,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment core.Environment `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string           `envconfig:"LOG_LEVEL"`

	// Infrastructure
	Redis      pkgredis.Config
	Session    model.SessionConfig
	Escalation model.EscalationConfig
	Server     model.ServerConfig

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Workflow
	Classifier model.ClassifierModelConfig
	Workflow   model.WorkflowConfig
	Catalog    model.CatalogConfig

	ReplayConcurrency int `envconfig:"REPLAY_CONCURRENCY" default:"4"`
}

// app is the wired support desk.
type app struct {
	runner  graph.Runner
	manager *conversations.Manager
	closers []func() error
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logx.Warn().Err(err).Msg("Shutdown step failed")
		}
	}
}

func main() {
	scriptsPath := flag.String("scripts", "", "YAML replay scripts for demo mode (defaults to the bundled demo)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] serve|chat|demo\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	mode := flag.Arg(0)
	if mode == "" {
		mode = "serve"
	}

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env file: %v\n", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to process environment config: %v\n", err)
		os.Exit(1)
	}
	logx.Init(logx.LoggerOpts{Environment: cfg.Environment, Level: cfg.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, mode, *scriptsPath); err != nil {
		logx.Error().Err(err).Str("mode", mode).Msg("Support desk stopped with error")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg AppConfig, mode, scriptsPath string) error {
	a, err := build(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	switch mode {
	case "serve":
		if cfg.Server.TracingEnabled {
			shutdown, err := telemetry.InitTracer("support-desk")
			if err != nil {
				return fmt.Errorf("init tracer: %w", err)
			}
			defer func() { _ = shutdown(context.Background()) }()
		}
		return server.New(cfg.Server, a.manager, a.runner).Start(ctx)
	case "chat":
		return chat(ctx, a.manager, os.Stdin, os.Stdout)
	case "demo":
		scripts := replay.Demo()
		if scriptsPath != "" {
			if scripts, err = replay.Load(scriptsPath); err != nil {
				return err
			}
		}
		transcripts, err := replay.New(a.manager, cfg.ReplayConcurrency).Run(ctx, scripts)
		if werr := replay.Write(os.Stdout, transcripts); werr != nil {
			return werr
		}
		return err
	}
	return fmt.Errorf("unknown mode %q", mode)
}

// build wires the catalog, classifiers, workflow graph and session manager.
func build(ctx context.Context, cfg AppConfig) (*app, error) {
	a := &app{}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	counter, err := catalog.NewTokenCounter()
	if err != nil {
		return nil, err
	}
	examples, err := catalog.FewShot(cat, counter, cfg.Classifier.ContextMaxTokens)
	if err != nil {
		return nil, err
	}

	chatModel, err := classifier.NewGeminiChatModel(ctx, classifier.GeminiConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Classifier,
	})
	if err != nil {
		return nil, err
	}
	set := classifier.NewSet(chatModel, classifier.ConfigFrom(cfg.Classifier), examples)

	resolver, err := escalation.NewResolver(cat.Agents)
	if err != nil {
		return nil, err
	}

	runner, err := graph.BuildGraph(ctx, graph.Config{
		Intent:    set.Intent,
		Sentiment: set.Sentiment,
		OrderID:   set.OrderID,
		Responder: responder.Default(),
		Resolver:  resolver,
		Workflow:  cfg.Workflow,
	})
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}
	a.runner = runner

	store, closeStore, err := repo.NewSessionStore(ctx, cfg.Session, cfg.Redis)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeStore)

	notifier, closeNotifier := escalation.NewNotifier(cfg.Escalation)
	a.closers = append(a.closers, closeNotifier)

	a.manager = conversations.NewManager(runner, store, notifier)

	logx.Info().
		Str("environment", cfg.Environment.String()).
		Str("session_store", cfg.Session.Store).
		Str("model", cfg.Classifier.Model).
		Int("agents", len(cat.Agents)).
		Msg("Support desk ready")
	return a, nil
}

// chat runs one interactive session over in/out. "exit" and "quit" close
// the session and start a fresh one; EOF ends the loop.
func chat(ctx context.Context, manager *conversations.Manager, in io.Reader, out io.Writer) error {
	sessionID := manager.NewSession()
	fmt.Fprintf(out, "Support chat started (session %s). Type exit or quit to reset.\n", sessionID)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}

		res, err := manager.Handle(ctx, sessionID, query)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(out, "Sorry, something went wrong: %v\n", err)
			continue
		}

		fmt.Fprintln(out, res.Response)
		if res.SessionEnded {
			sessionID = res.SessionID
			fmt.Fprintf(out, "New session %s\n", sessionID)
		}
	}
}
