// Pluto - Voice activated desktop assistant
// Wake-word listening, local model intent classification, and tool dispatch
package main

import (
	"context"
	"log"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"

	"github.com/plutovoice/go-pluto/internal/config"
	plog "github.com/plutovoice/go-pluto/internal/log"
	"github.com/plutovoice/go-pluto/pkg/debug"
	"github.com/plutovoice/go-pluto/pkg/pluto"
)

func main() {
	cfg := parseFlags()

	app, err := pluto.New(cfg)
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	if err := app.Init(); err != nil {
		log.Fatalf("❌ Initialization failed: %v", err)
	}
	defer app.Shutdown()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("❌ Runtime error: %v", err)
	}
}

// parseFlags parses command line flags and returns configuration.
// Environment variables still override flags inside pluto.New, so a
// .env file works the same as the command line.
func parseFlags() pluto.Config {
	cfg := pluto.DefaultConfig()

	envFile := cli.StringP("env", "e", ".env", "Env file path")
	port := cli.StringP("port", "p", cfg.Port, "Dashboard HTTP port")
	ollamaURL := cli.String("ollama-url", cfg.OllamaURL, "OpenAI-compatible model endpoint")
	ollamaFallback := cli.String("ollama-fallback-url", "", "Second model endpoint tried when the primary fails")
	lang := cli.StringP("lang", "l", cfg.Language, "Response language: en or ta")
	debugFlag := cli.BoolP("debug", "d", false, "Enable verbose debug logging")
	debugHearing := cli.Bool("debug-hearing", false, "Log every microphone capture (very verbose)")
	noListen := cli.Bool("no-listen", false, "Start with the microphone loop paused")
	noDiscover := cli.Bool("no-discover", false, "Skip the startup PATH scan for launchable apps")
	listener := cli.String("listener", "", "External recognizer command, e.g. \"vosk-transcribe --mic\"")
	cli.Parse()

	godotenv.Load(*envFile)

	cfg.Port = *port
	cfg.OllamaURL = *ollamaURL
	cfg.OllamaFallbackURL = *ollamaFallback
	cfg.Language = *lang
	cfg.Debug = config.EnvBool("PLUTO_DEBUG", *debugFlag)
	cfg.ListenEnabled = !*noListen
	cfg.Discover = !*noDiscover
	if *listener != "" {
		cfg.ListenerCommand = strings.Fields(*listener)
	}
	debug.Hearing = *debugHearing

	level := "info"
	if cfg.Debug {
		level = "debug"
	}
	plog.Init(level)

	return cfg
}
