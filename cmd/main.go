package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MarziyaHasanova31/battleship/api"
	"github.com/MarziyaHasanova31/battleship/db"
	"github.com/MarziyaHasanova31/battleship/db/sqlc"
	"github.com/MarziyaHasanova31/battleship/internal/config"
	mb "github.com/MarziyaHasanova31/battleship/models/battleship"
	mc "github.com/MarziyaHasanova31/battleship/models/connection"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalln(err)
	}

	// Analytics are optional; the game server runs without a database
	var analytics *sqlc.AnalyticsManager
	if cfg.DatabaseURL != "" {
		conn, err := db.ConnectToDb(cfg.DatabaseURL, db.DefaultMigrationDir)
		if err != nil {
			log.Fatalln(err)
		}
		defer conn.Close()
		analytics = sqlc.NewDbManager(conn).Analytics
	} else {
		log.Println("DATABASE_URL not set, analytics disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bsm := mc.NewBattleshipSessionManager()
	go bsm.CleanupPeriodically(ctx)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	bgm := mb.NewBattleshipGameManager()
	rp := api.NewRequestProcessor(bsm, bgm, analytics, cfg.Game, mb.NewRandomSource(seed))

	server, err := api.NewServer(rp, api.WithPort(cfg.Port), api.WithStage(cfg.Stage))
	if err != nil {
		log.Fatalln(err)
	}
	if err := server.Run(ctx); err != nil {
		log.Println(err)
	}
}
