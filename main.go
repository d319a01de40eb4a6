package main

import (
	"energy-monitor/confs"
	"energy-monitor/db"
	"energy-monitor/logging"
	"energy-monitor/server"
	"log"
)

func main() {
	// load config
	cfg, err := confs.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.ServiceName)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// connect to database
	database, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	// run server
	srv := server.NewServer(cfg, database, logger)
	srv.Start()
}
