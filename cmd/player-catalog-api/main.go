// Package main is the entry point for the player catalog API server.
package main

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/scoutline/player-catalog-server/cmd/player-catalog-api/app"
	"github.com/scoutline/player-catalog-server/internal/config"
	"github.com/scoutline/player-catalog-server/internal/logger"
)

// getLogLevel reads the PLAYER_CATALOG_LOG_LEVEL environment variable,
// falling back to plain LOG_LEVEL.
func getLogLevel() string {
	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	levelStr := v.GetString("LOG_LEVEL")
	if levelStr == "" {
		levelStr = os.Getenv("LOG_LEVEL")
	}
	return levelStr
}

func main() {
	logger.Initialize(logger.Options{Level: getLogLevel()})

	if err := app.NewRootCmd().Execute(); err != nil {
		logger.Fatalf("Command failed: %v", err)
	}
}
