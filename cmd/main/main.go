package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/lwozniak/sqlparq/internal/cli"
	"github.com/lwozniak/sqlparq/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	if err := logger.Init(logger.Config{Level: "info"}); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		logger.Get().Error("run failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
