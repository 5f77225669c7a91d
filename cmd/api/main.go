package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/okandemir/academix/internal/pkg/logger"
	"github.com/okandemir/academix/internal/server"
)

// @title Academix API
// @version 1.0
// @description REST API for academic course, student and professor management

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

func main() {
	// A missing .env file is fine; config falls back to defaults and the
	// process environment.
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found, using process environment")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
