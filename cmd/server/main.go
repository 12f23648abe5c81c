// Command server — точка входа: поднимает игровой сервер, проверяет
// контент или прогоняет записанный повтор.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tripstych/elemental/internal/content"
	"github.com/tripstych/elemental/internal/engine"
	"github.com/tripstych/elemental/internal/infrastructure/storage"
	"github.com/tripstych/elemental/internal/server"
	"github.com/tripstych/elemental/internal/version"
	"github.com/tripstych/elemental/pkg/logger"
)

func main() {
	root := &cobra.Command{
		Use:           "elemental",
		Short:         "Turn-based dungeon server with a physical alchemy magic system",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), validateCmd(), replayCmd(), versionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// serveCmd запускает HTTP/WebSocket сервер.
func serveCmd() *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := engine.LoadConfig()
			if err != nil {
				return err
			}
			if seed != 0 {
				cfg.Seed = seed
			}

			logger.Init(cfg.LogLevel, cfg.LogFormat)
			logger.Log.Info("Starting Elemental...")
			logger.Log.Info(version.String())
			if cfg.Seed != 0 {
				logger.Log.Infof("🎲 Using explicit master seed: %d", cfg.Seed)
			}

			lib, err := content.Load(cfg.DataDir)
			if err != nil {
				return fmt.Errorf("load content: %w", err)
			}

			var recorder engine.Recorder
			if cfg.ReplayDir != "" {
				replays, err := storage.NewReplayService(cfg.ReplayDir)
				if err != nil {
					return err
				}
				recorder = replays
				logger.Log.Infof("💿 Replays enabled: %s", cfg.ReplayDir)
			}

			service := engine.NewService(cfg, lib, recorder)
			srv := server.New(service, cfg.Addr)

			// Graceful Shutdown
			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Run() }()

			select {
			case err := <-errCh:
				return err
			case <-stop:
				logger.Log.Info("Shutting down...")
				service.Shutdown()
				logger.Log.Info("Done.")
				return nil
			}
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0,
		"default world seed for new sessions (0 = random per session)")
	return cmd
}

// validateCmd загружает контент и сообщает о проблемах: битые ссылки
// валят загрузку, коллизии векторов печатаются списком. Выходит с
// ненулевым кодом, если контент публиковать нельзя.
func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load and check the content tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := engine.LoadConfig()
			if err != nil {
				return err
			}
			logger.Init("warn", "text")

			lib, err := content.Load(cfg.DataDir)
			if err != nil {
				return fmt.Errorf("content is broken: %w", err)
			}

			cmd.Printf("Spells: %d\n", lib.Registry.Len())

			collisions := lib.Registry.Collisions()
			if len(collisions) == 0 {
				cmd.Println("No vector collisions. Content is clean.")
				return nil
			}

			cmd.Printf("Vector collisions: %d\n", len(collisions))
			for _, col := range collisions {
				cmd.Printf("  %s: kept %q, unreachable %q\n", col.Vector, col.Kept, col.Lost)
			}
			return fmt.Errorf("%d words are unreachable through transformation", len(collisions))
		},
	}
}

// replayCmd прогоняет записанный журнал через свежую сессию на том же
// зерне. Детерминизм движка гарантирует тот же исход, что и в партии.
func replayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <file>",
		Short: "Re-run a recorded session and print the outcome",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := engine.LoadConfig()
			if err != nil {
				return err
			}
			logger.Init("warn", "text")

			lib, err := content.Load(cfg.DataDir)
			if err != nil {
				return fmt.Errorf("load content: %w", err)
			}

			journal, err := storage.Load(args[0])
			if err != nil {
				return fmt.Errorf("load replay: %w", err)
			}

			cmd.Printf("Replaying session %s (seed %d, %d actions)\n",
				journal.SessionID, journal.Seed, len(journal.Actions))

			service := engine.NewService(cfg, lib, nil)
			session, err := service.CreateSession("", journal.Seed)
			if err != nil {
				return err
			}

			lastTurn, lastPhase := 0, ""
			for i, act := range journal.Actions {
				resp, err := session.Perform(act.Action, act.Payload)
				if err != nil {
					return fmt.Errorf("action %d (%s) diverged: %w", i, act.Action, err)
				}
				lastTurn, lastPhase = resp.Turn, resp.Phase
			}

			if lastPhase == "" {
				cmd.Println("Journal is empty.")
				return nil
			}
			cmd.Printf("Finished: turn %d, phase %s\n", lastTurn, lastPhase)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version.String())
		},
	}
}
