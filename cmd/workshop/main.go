package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"workshop-lab/ai"
	"workshop-lab/configstore"
	"workshop-lab/domain"
	"workshop-lab/engine"
	"workshop-lab/internal"
	"workshop-lab/moderation"
	"workshop-lab/repositories"
	"workshop-lab/services"
	"workshop-lab/sink"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, drives the REPL, and centralizes
// error reporting, so that defers (database cleanup) always execute
// before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return err
	}

	// 2. Storage (BadgerDB + Bluge index)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		log.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	// 3. Engine assembly
	moderator, err := moderation.NewModerator(config.CensoredWordList(), charReplacement)
	if err != nil {
		return fmt.Errorf("moderator init failed: %w", err)
	}

	chatter := ai.NewOllamaClient(config.OllamaHost, config.OllamaModel, config.AdvisorTimeout)
	advisor := ai.NewAdvisor(chatter, log)
	selector := engine.NewTurnSelector(advisor, log, config.ContextWindow)
	sessionEngine := engine.NewEngine(log, selector, advisor, &moderator)

	repository := repositories.NewTranscriptRepository(db, blugeWriter, log)
	sessionEngine.RegisterSink(sink.NewDiskSink(repository, log))

	store := configstore.NewStore(config.ConfigDir, configstore.NewValidator())
	service := services.NewWorkshopService(sessionEngine, store, repository, log)

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. REPL
	return repl(ctx, service, sessionEngine)
}

// repl reads one command per line and applies it fully before reading
// the next. An interrupt while a session is Running ends it cleanly,
// mirroring the /endsession path.
func repl(ctx context.Context, service *services.WorkshopService, sessionEngine *engine.Engine) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	printWelcome()
	for {
		printPrompt(sessionEngine.Phase())
		select {
		case <-ctx.Done():
			if sessionEngine.Phase() == domain.PhaseRunning {
				resp, err := service.Execute(context.Background(), "/endsession")
				render(resp, err)
			}
			fmt.Println()
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if line == "" {
				continue
			}
			resp, err := service.Execute(ctx, line)
			render(resp, err)
		}
	}
}
