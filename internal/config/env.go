package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/postgen/internal/logfields"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads .env and .env.local from the working directory when
// present. Variables already set in the process environment win.
func loadEnvFiles() {
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Warn("Failed to load env file", logfields.Path(path), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.Path(path))
	}
}
