package main

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/charmbracelet/log"
	"github.com/j0nas500/statsembed/pkg/config"
	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"
	commit  = "none"
	date    = "unknown"
)

var (
	configPath string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:   "statsembed",
	Short: "Keeps a Discord stats leaderboard up to date",
	Long: `statsembed reads player statistics from Postgres and renders them into a single
Discord embed that is edited in place on a fixed interval.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv(envFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the leaderboard TOML config")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file to preload")
	rootCmd.Version = version + "-" + commit + " (" + date + ")"
}

// newLogger writes to stdout and, unless DISABLE_LOG_FILE is set, to logs.txt under LOG_PATH.
func newLogger(env config.Env) (*log.Logger, func(), error) {
	var w io.Writer = os.Stdout
	closer := func() {}
	if !env.DisableLogFile {
		file, err := os.Create(path.Join(env.LogPath, "logs.txt"))
		if err != nil {
			return nil, nil, err
		}
		w = io.MultiWriter(os.Stdout, file)
		closer = func() { file.Close() }
	}

	level := log.InfoLevel
	if env.LogLevel != "" {
		parsed, err := log.ParseLevel(env.LogLevel)
		if err != nil {
			closer()
			return nil, nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", env.LogLevel, err)
		}
		level = parsed
	}

	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "statsembed",
		ReportTimestamp: true,
		Level:           level,
	})
	return logger, closer, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Program exited with the following error:")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
