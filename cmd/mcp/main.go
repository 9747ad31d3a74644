package main

import (
	"log"
	"os"

	"jobtracker/internal/config"
	"jobtracker/internal/index"
	appmcp "jobtracker/internal/mcp"
	"jobtracker/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
)

// The MCP binary talks straight to the search index: no Postgres, no
// Redis, nothing but reads. Logs go to stderr; stdout carries the
// protocol.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.New(os.Stderr, "[MCP] ", log.LstdFlags)

	loader := index.NewLoader(cfg.Typesense, logger)
	occupations := usecase.NewOccupationUsecase(loader, nil, logger)
	wages := usecase.NewWageUsecase(loader, nil, logger)
	skills := usecase.NewSkillUsecase(loader, nil, logger)

	s := appmcp.New(occupations, wages, skills)
	if err := server.ServeStdio(s); err != nil {
		log.Fatalf("mcp server error: %v", err)
	}
}
