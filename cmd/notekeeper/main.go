package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/notekeeper/internal/profile"
	"github.com/hrygo/notekeeper/internal/version"
	"github.com/hrygo/notekeeper/server"
	"github.com/hrygo/notekeeper/store"
	"github.com/hrygo/notekeeper/store/db"
)

var (
	rootCmd = &cobra.Command{
		Use:   "notekeeper",
		Short: `A small note-taking server with tags, search and AI summaries of your notes.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Systemd units provide their environment through EnvironmentFile.
			if !isRunningAsSystemdService() {
				_ = godotenv.Load()
			}
			return nil
		},
		Run: func(_ *cobra.Command, _ []string) {
			instanceProfile := &profile.Profile{
				Mode:           viper.GetString("mode"),
				Addr:           viper.GetString("addr"),
				Port:           viper.GetInt("port"),
				Data:           viper.GetString("data"),
				Driver:         viper.GetString("driver"),
				DSN:            viper.GetString("dsn"),
				SummarizeRPS:   viper.GetFloat64("summarize-rps"),
				SummarizeBurst: viper.GetInt("summarize-burst"),
				Seed:           viper.GetBool("seed"),
				Version:        version.GetCurrentVersion(viper.GetString("mode")),
			}
			instanceProfile.FromEnv()
			if err := instanceProfile.Validate(); err != nil {
				panic(err)
			}
			setupLogger(instanceProfile)

			ctx, cancel := context.WithCancel(context.Background())
			dbDriver, err := db.NewDBDriver(instanceProfile)
			if err != nil {
				cancel()
				slog.Error("failed to create db driver", "driver", instanceProfile.Driver, "error", err)
				return
			}

			storeInstance := store.New(dbDriver, instanceProfile)
			if err := storeInstance.Migrate(ctx); err != nil {
				cancel()
				slog.Error("failed to migrate", "error", err)
				return
			}

			s, err := server.NewServer(ctx, instanceProfile, storeInstance)
			if err != nil {
				cancel()
				slog.Error("failed to create server", "error", err)
				return
			}

			c := make(chan os.Signal, 1)
			// Trigger graceful shutdown on SIGINT or SIGTERM.
			signal.Notify(c, terminationSignals...)

			if err := s.Start(ctx); err != nil {
				slog.Error("failed to start server", "error", err)
				cancel()
				return
			}

			printGreetings(instanceProfile)

			go func() {
				<-c
				s.Shutdown(ctx)
				cancel()
			}()

			// Wait for CTRL-C.
			<-ctx.Done()
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.StringFull())
		},
	}
)

func init() {
	viper.SetDefault("mode", "dev")
	viper.SetDefault("driver", "memory")
	viper.SetDefault("port", 28082)
	viper.SetDefault("summarize-rps", 2)
	viper.SetDefault("summarize-burst", 5)
	viper.SetDefault("seed", true)

	rootCmd.PersistentFlags().String("mode", "dev", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 28082, "port of server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "memory", "database driver (memory, sqlite, postgres)")
	rootCmd.PersistentFlags().String("dsn", "", "database source name(aka. DSN)")
	rootCmd.PersistentFlags().Float64("summarize-rps", 2, "summarize requests per second allowed per client IP, 0 disables the limit")
	rootCmd.PersistentFlags().Int("summarize-burst", 5, "summarize burst allowed per client IP")
	rootCmd.PersistentFlags().Bool("seed", true, "insert the welcome notes into an empty store")

	for _, name := range []string{"mode", "addr", "port", "data", "driver", "dsn", "summarize-rps", "summarize-burst", "seed"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("notekeeper")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	rootCmd.AddCommand(versionCmd, newSummarizeCmd())
}

// setupLogger installs a text handler in dev and a JSON handler in prod.
func setupLogger(profile *profile.Profile) {
	level := slog.LevelInfo
	if profile.IsDev() {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if profile.Mode == "prod" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func printGreetings(profile *profile.Profile) {
	fmt.Printf("Notekeeper %s started successfully!\n", profile.Version)

	if profile.IsDev() {
		fmt.Fprint(os.Stderr, "Development mode is enabled\n")
		if profile.DSN != "" {
			fmt.Fprintf(os.Stderr, "Database: %s\n", profile.DSN)
		}
	}

	fmt.Printf("Database driver: %s\n", profile.Driver)
	if profile.Driver == "sqlite" {
		fmt.Printf("Data directory: %s\n", profile.Data)
	}
	fmt.Printf("Mode: %s\n", profile.Mode)
	if !profile.IsAIEnabled() {
		fmt.Fprint(os.Stderr, "No LLM API key configured: summarize requests will fail until NOTEKEEPER_AI_LLM_API_KEY or OPENAI_API_KEY is set\n")
	}

	if len(profile.Addr) == 0 {
		fmt.Printf("Server running on port %d\n", profile.Port)
		fmt.Printf("Access Notekeeper at: http://localhost:%d\n", profile.Port)
	} else {
		fmt.Printf("Server running on %s:%d\n", profile.Addr, profile.Port)
		fmt.Printf("Access Notekeeper at: http://%s:%d\n", profile.Addr, profile.Port)
	}

	fmt.Println("\nHappy note-taking!")
}

// isRunningAsSystemdService detects if the process is running under systemd
func isRunningAsSystemdService() bool {
	return os.Getenv("INVOCATION_ID") != "" || os.Getenv("WATCHDOG_USEC") != ""
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
