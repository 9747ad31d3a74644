package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"jobtracker/internal/app"
	"jobtracker/internal/config"
	"jobtracker/internal/repository"

	"github.com/joho/godotenv"
)

func main() {
	source := flag.String("source", "all", "source to refresh: all, bls or onet")
	checkOnly := flag.Bool("check", false, "probe sources for new reference periods and exit")
	ifChanged := flag.Bool("if-changed", false, "refresh only when a source's reference period moved")
	recreate := flag.Bool("recreate", false, "drop and recreate the search collections before loading")
	timeout := flag.Duration("timeout", 4*time.Hour, "overall run timeout")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.New(os.Stdout, "[Sync] ", log.LstdFlags)

	c, err := app.NewContainer(cfg, logger)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	if err := c.RunMigrations(migCtx, "migrations"); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if *checkOnly {
		statuses := c.Engine.CheckForUpdates(ctx)
		b, _ := json.MarshalIndent(statuses, "", "  ")
		logger.Printf("check complete:\n%s", b)
		return
	}

	if *recreate {
		if err := c.Index.EnsureCollections(ctx, true); err != nil {
			log.Fatalf("recreate collections failed: %v", err)
		}
	}

	var run repository.SyncRun
	switch {
	case *ifChanged:
		run, err = c.Engine.RunIfChanged(ctx, repository.TriggerManual)
	case *source == "all" || *source == "":
		run, err = c.Engine.RunFullRefresh(ctx, repository.TriggerManual)
	default:
		run, err = c.Engine.RunSourceRefresh(ctx, *source, repository.TriggerManual)
	}
	if err != nil {
		log.Fatalf("refresh failed: run=%s err=%v", run.ID, err)
	}

	logger.Printf("refresh complete run=%s status=%s occupations=%d wages=%d skills=%d failed=%d",
		run.ID, run.Status, run.OccupationsLoaded, run.WagesLoaded, run.SkillsLoaded, run.FailedDocuments)
}
