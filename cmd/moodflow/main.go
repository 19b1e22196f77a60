package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/twnkl2713/moodflow/internal/logger"
	"github.com/twnkl2713/moodflow/pkg/config"
	"github.com/twnkl2713/moodflow/pkg/server"
)

// Set at build time with -ldflags "-X main.version=..."
var version = "dev"

const usage = `MoodFlow - mood journal server

Usage:
  moodflow <command> [flags]

Commands:
  init      Write a default configuration file
  start     Start the journal server
  version   Print the version

Run 'moodflow <command> -h' for command flags.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "init":
		runInit(os.Args[2:])
	case "start":
		runStart(os.Args[2:])
	case "version":
		fmt.Printf("moodflow %s\n", version)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
}

func runInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("force", false, "Overwrite an existing config file")
	configPath := fs.String("config", "", "Where to write the config file (default: "+config.GetDefaultConfigPath()+")")
	_ = fs.Parse(args)

	path := *configPath
	if path == "" {
		var err error
		if path, err = config.InitConfig(*force); err != nil {
			log.Fatalf("Failed to initialize config: %v", err)
		}
	} else if err := config.InitConfigToPath(path, *force); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	fmt.Printf("Configuration written to %s\n", path)
	fmt.Println("Edit it, then run: moodflow start --config " + path)
}

func runStart(args []string) {
	fs := flag.NewFlagSet("start", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file (default: "+config.GetDefaultConfigPath()+")")
	_ = fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output); err != nil {
		log.Fatalf("Failed to configure logger: %v", err)
	}

	fmt.Println("MoodFlow - mood journal server")
	logger.Info("Log level set to: %s", cfg.Logging.Level)
	logger.Info("Storage backend: %s", cfg.Storage.Type)

	// SIGINT and SIGTERM stop the process; requests still queued are dropped.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := config.InitializeMetrics(cfg)
	if m.Server != nil {
		go func() {
			if err := m.Server.Start(ctx); err != nil {
				logger.Error("Metrics server error: %v", err)
			}
		}()
		logger.Info("Metrics enabled on port %d", m.Server.Port())
	}

	store, backend, err := config.OpenJournal(ctx, cfg, m)
	if err != nil {
		log.Fatalf("Failed to open journal: %v", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Error("Failed to close journal backend: %v", err)
		}
	}()
	logger.Info("Journal loaded: %d entries from %s backend", store.Len(), backend.Name())

	adapters, err := config.CreateAdapters(cfg, m)
	if err != nil {
		log.Fatalf("Failed to create adapters: %v", err)
	}

	srv := server.New(store)
	for _, a := range adapters {
		if err := srv.AddAdapter(a); err != nil {
			log.Fatalf("Failed to add %s adapter: %v", a.Protocol(), err)
		}
	}

	logger.Info("Server is running on %s. Press Ctrl+C to stop.", cfg.Adapters.HTTP.Address())

	err = srv.Serve(ctx)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		logger.Info("Server stopped")
	default:
		logger.Error("Server error: %v", err)
		stop()
		_ = backend.Close()
		os.Exit(1)
	}
}
