package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"blog/build"
	"blog/config"
	"blog/server"
)

var cli struct {
	Config  string `short:"c" help:"Site configuration file" default:"site.yaml"`
	Root    string `short:"r" help:"Site root directory" default:"."`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Export struct {
		Output string `short:"o" help:"Output directory (overrides output_dir)"`
	} `cmd:"" default:"1" help:"Write the site to the output directory"`

	Serve struct {
		Addr string `short:"a" help:"Listen address (overrides addr)"`
	} `cmd:"" help:"Serve the site, rebuilding on every request"`

	Check struct{} `cmd:"" help:"Report site-relative links that no page answers"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("blog"),
		kong.Description("Static blog generator."),
	)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(cli.Config)
	if err != nil {
		slog.Error("loading configuration failed", "error", err)
		os.Exit(1)
	}

	b, err := build.New(cfg, os.DirFS(cli.Root))
	if err != nil {
		slog.Error("initialization failed", "error", err)
		os.Exit(1)
	}

	switch kctx.Command() {
	case "export":
		output := cfg.OutputDir
		if cli.Export.Output != "" {
			output = cli.Export.Output
		}
		if err := b.Export(output); err != nil {
			slog.Error("build failed", "error", err)
			os.Exit(1)
		}

	case "serve":
		addr := cfg.Addr
		if cli.Serve.Addr != "" {
			addr = cli.Serve.Addr
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := server.New(b).Run(ctx, addr); err != nil {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}

	case "check":
		os.Exit(check(b))
	}
}

func check(b *build.Builder) int {
	reg, err := b.Registry()
	if err != nil {
		slog.Error("build failed", "error", err)
		return 1
	}

	broken, err := b.CheckLinks(reg, build.Context{})
	if err != nil {
		slog.Error("link check failed", "error", err)
		return 1
	}
	for _, l := range broken {
		slog.Warn("broken link", "page", "/"+l.Page, "link", l.Link)
	}
	if len(broken) > 0 {
		slog.Error("link check failed", "broken", len(broken))
		return 1
	}

	slog.Info("all links resolve", "pages", len(reg))
	return 0
}
