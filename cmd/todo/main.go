package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/idilsaglam/todo/internal/action"
	"github.com/idilsaglam/todo/internal/cli"
	"github.com/idilsaglam/todo/internal/config"
	"github.com/idilsaglam/todo/internal/logging"
	"github.com/idilsaglam/todo/internal/observe"
	"github.com/idilsaglam/todo/internal/todo"
	"github.com/idilsaglam/todo/internal/transport"
	"github.com/idilsaglam/todo/internal/tui"
	"github.com/idilsaglam/todo/internal/ui"
	"github.com/idilsaglam/todo/internal/web"
)

func main() {
	// Root flags (apply to every subcommand)
	configPath := flag.String("config", "", "path to a YAML config file")
	execCtx := flag.String("context", "", "execution context: server or browser")
	addr := flag.String("addr", "", "base address of the todo service")
	encoding := flag.String("encoding", "", "wire encoding: binary or text")
	theme := flag.String("theme", "", "terminal theme: classic, neon or mono")
	groupPending := flag.Bool("group", false, "group output by pending/done")
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stderr)
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	override(&cfg.Service.Context, *execCtx)
	override(&cfg.Service.BaseAddress, *addr)
	override(&cfg.Service.Encoding, *encoding)
	override(&cfg.UI.Theme, *theme)
	ui.SetTheme(cfg.UI.Theme)

	logger, err := logging.Setup(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ec, err := transport.ParseExecutionContext(cfg.Service.Context)
	if err != nil {
		logger.Fatal("invalid execution context", zap.Error(err))
	}
	enc, err := transport.ParseEncoding(cfg.Service.Encoding)
	if err != nil {
		logger.Fatal("invalid encoding", zap.Error(err))
	}

	metrics := observe.NewMetrics(prometheus.DefaultRegisterer)
	handle, err := transport.Bind(transport.Config{
		BaseAddress:  cfg.Service.BaseAddress,
		Encoding:     enc,
		Interceptors: []connect.Interceptor{observe.New(logger, metrics)},
	}, ec)
	if err != nil {
		logger.Fatal("transport construction failed",
			zap.String("context", ec.String()),
			zap.String("base_address", cfg.Service.BaseAddress),
			zap.Error(err),
		)
	}
	logger.Debug("transport bound",
		zap.String("context", handle.Context().String()),
		zap.String("protocol", handle.Protocol()),
		zap.String("encoding", handle.Encoding().String()),
	)

	dispatcher := action.New(todo.FromHandle(handle), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := cli.Run(ctx, args, cli.Options{
		Group:   *groupPending,
		Actions: dispatcher,
		Serve: func(ctx context.Context) error {
			return web.New(dispatcher, logger, prometheus.DefaultGatherer).ListenAndServe(ctx, cfg.Web.Listen)
		},
		Interactive: func(ctx context.Context) error {
			return tui.Run(ctx, dispatcher)
		},
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	stop()
	_ = logger.Sync()
	os.Exit(code)
}

func override(dst *string, flagValue string) {
	if flagValue != "" {
		*dst = flagValue
	}
}
