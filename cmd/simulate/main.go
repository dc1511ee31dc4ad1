package main

import (
	"fmt"
	"log"
	"time"

	"github.com/MarziyaHasanova31/battleship/internal/config"
	"github.com/MarziyaHasanova31/battleship/internal/simulation"
	mb "github.com/MarziyaHasanova31/battleship/models/battleship"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalln(err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	src := mb.NewRandomSource(seed)

	game, err := mb.NewBattleshipGameManager().CreateGame(cfg.Game, src)
	if err != nil {
		log.Fatalln(err)
	}

	opts := []simulation.Option{simulation.WithObserver(printTurn)}
	if cfg.MaxTurns > 0 {
		opts = append(opts, simulation.WithMaxTurns(cfg.MaxTurns))
	}

	report, err := simulation.Run(game, src, opts...)
	if err != nil {
		log.Println(err)
	}

	for _, p := range game.Players() {
		fmt.Printf("\n%s's board:\n%s", p.Name(), p.Board().Render(true))
	}

	fmt.Println()
	if report.Winner != "" {
		fmt.Printf("%s wins after %d turns.\n", report.Winner, game.Turns())
	} else {
		fmt.Println("No winner.")
	}
	for _, s := range report.Stats {
		fmt.Printf("%s: %d shots, %d hits, %d misses, accuracy %.1f%%\n", s.Name, s.Shots, s.Hits, s.Misses, s.Accuracy)
	}
}

func printTurn(rec simulation.TurnRecord) {
	fmt.Printf("It's %s's turn.\n", rec.Actor)
	if rec.Err != nil {
		fmt.Printf("%s cannot attack %s: %v\n", rec.Actor, rec.Target, rec.Err)
		return
	}

	switch rec.ShipStatus {
	case mb.ShipStatusDestroyed:
		fmt.Printf("%s attacks %s: %s, ship destroyed!\n", rec.Actor, rec.Target, rec.Outcome)
	case mb.ShipStatusWounded:
		fmt.Printf("%s attacks %s: %s, ship wounded.\n", rec.Actor, rec.Target, rec.Outcome)
	default:
		fmt.Printf("%s attacks %s: %s\n", rec.Actor, rec.Target, rec.Outcome)
	}
}
