package main

import (
	"context"
	"flag"
	"os"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jellydator/ttlcache/v3"
	"github.com/joho/godotenv"
	"github.com/steven0413/BiblioteEmail/clients"
	"github.com/steven0413/BiblioteEmail/config"
	"github.com/steven0413/BiblioteEmail/handler"
	"github.com/steven0413/BiblioteEmail/internal/jsonlog"
	"github.com/steven0413/BiblioteEmail/internal/mailer"
	"github.com/steven0413/BiblioteEmail/repository"
	"github.com/steven0413/BiblioteEmail/repository/postgres"
	"github.com/steven0413/BiblioteEmail/service"
)

// app defines the application's layers and shared resources.
type app struct {
	config  config.Config
	repo    repository.Repository
	service service.Service
	handler *handler.Handler
}

func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	// Initialize configuration from an optional YAML file plus the
	// environment (.env is loaded first when present).
	_ = godotenv.Load()
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to a YAML config file")
	flag.Parse()

	var cfg config.Config
	var err error
	if configPath != "" {
		err = cleanenv.ReadConfig(configPath, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	// Initialize database connection
	db, err := postgres.OpenDBConn(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer db.Close()
	logger.PrintInfo("database connection pool established", nil)

	repo := repository.New(db)
	// Schema problems should not keep the process from answering over
	// the API; the executor reports them per-operation anyway.
	if err := repo.InitSchema(context.Background()); err != nil {
		logger.PrintWarning("schema initialization failed", map[string]string{"error": err.Error()})
	}

	// Other shared resources: waitgroup and the processed-message cache
	// used to deduplicate batch runs.
	var wg sync.WaitGroup
	seen := ttlcache.New(ttlcache.WithTTL[string, time.Time](cfg.Batch.DedupeTTL))
	go seen.Start()

	// External collaborators: constructed once, reused across requests.
	oracle := clients.NewOracleClient(cfg)
	postman := mailer.New(cfg.Smtp.Host, cfg.Smtp.Port, cfg.Smtp.FallbackPort, cfg.Smtp.Username, cfg.Smtp.Password, cfg.Smtp.Sender)
	mailbox := clients.NewMailbox(cfg)

	// Application layers
	service := service.New(cfg, &wg, logger, repo, oracle, postman, mailbox, seen)
	handler := handler.New(cfg, logger, service)

	// Instantiate application
	app := &app{
		config:  cfg,
		repo:    repo,
		service: service,
		handler: handler,
	}

	// Start HTTP server
	err = app.serve(&wg, logger)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}
