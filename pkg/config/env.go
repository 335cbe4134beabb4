package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Env holds the secrets and connection parameters that never live in the config file.
type Env struct {
	DiscordToken   string
	PostgresAddr   string
	PostgresUser   string
	PostgresPass   string
	RedisAddr      string
	RedisPass      string
	MetricsPort    string
	LocalePath     string
	BotLang        string
	LogPath        string
	DisableLogFile bool
	LogLevel       string
}

// LoadDotEnv preloads variables from the given files. Missing files are ignored, existing
// environment variables win.
func LoadDotEnv(files ...string) error {
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

func EnvFromOS() Env {
	logPath := os.Getenv("LOG_PATH")
	if logPath == "" {
		logPath = "./"
	}
	return Env{
		DiscordToken:   os.Getenv("DISCORD_BOT_TOKEN"),
		PostgresAddr:   os.Getenv("POSTGRES_ADDR"),
		PostgresUser:   os.Getenv("POSTGRES_USER"),
		PostgresPass:   os.Getenv("POSTGRES_PASS"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPass:      os.Getenv("REDIS_PASS"),
		MetricsPort:    os.Getenv("METRICS_PORT"),
		LocalePath:     os.Getenv("LOCALE_PATH"),
		BotLang:        os.Getenv("BOT_LANG"),
		LogPath:        logPath,
		DisableLogFile: os.Getenv("DISABLE_LOG_FILE") != "",
		LogLevel:       os.Getenv("LOG_LEVEL"),
	}
}

// RequirePostgres checks the variables every command needs.
func (e Env) RequirePostgres() error {
	if e.PostgresAddr == "" {
		return errors.New("no POSTGRES_ADDR specified; exiting")
	}
	if e.PostgresUser == "" {
		return errors.New("no POSTGRES_USER specified; exiting")
	}
	if e.PostgresPass == "" {
		return errors.New("no POSTGRES_PASS specified; exiting")
	}
	return nil
}

func (e Env) RequireDiscord() error {
	if e.DiscordToken == "" {
		return errors.New("no DISCORD_BOT_TOKEN provided")
	}
	return nil
}
