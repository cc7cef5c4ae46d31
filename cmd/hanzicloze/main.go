package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/hanzicloze/internal/archive"
	"codeberg.org/snonux/hanzicloze/internal/cli"
	"codeberg.org/snonux/hanzicloze/internal/logger"
	"codeberg.org/snonux/hanzicloze/internal/models"
	"codeberg.org/snonux/hanzicloze/internal/processor"
	"codeberg.org/snonux/hanzicloze/internal/transliteration"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, flags *cli.Flags) error {
	cli.ApplyConfig(flags)
	if err := flags.Validate(); err != nil {
		return err
	}

	log := logger.Setup(flags.LogLevel, flags.LogFormat, os.Stderr)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flags.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flags.Timeout)
		defer cancel()
	}

	// Handle --archive flag
	if flags.Archive {
		if _, err := archive.ArchiveCards(flags.OutputDir); err != nil {
			if errors.Is(err, archive.ErrNothingToArchive) {
				fmt.Println("Nothing to archive in", flags.OutputDir)
				return nil
			}
			return fmt.Errorf("failed to archive cards: %w", err)
		}
		return nil
	}

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey())
		return lister.ListAvailableModels(ctx, os.Stdout)
	}

	svc, err := newService(ctx, flags, log)
	if err != nil {
		return err
	}

	proc := processor.NewProcessor(flags, svc, log)
	if _, err := proc.Run(ctx); err != nil {
		log.Error("Run failed", "error", err)
		return err
	}

	return nil
}

func newService(ctx context.Context, flags *cli.Flags, log *slog.Logger) (transliteration.Service, error) {
	config := transliteration.DefaultConfig()
	config.Provider = flags.Provider
	config.OpenAIKey = cli.GetOpenAIKey()
	config.OpenAIModel = flags.OpenAIModel
	config.GeminiKey = cli.GetGeminiKey()
	config.GeminiModel = flags.GeminiModel
	config.EnableCache = !flags.NoCache

	svc, err := transliteration.NewService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s transliteration: %w", flags.Provider, err)
	}

	log.Debug("Transliteration ready", "provider", svc.Name(), "cache", config.EnableCache)
	return svc, nil
}
