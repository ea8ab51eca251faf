// Command mine-cli deals a demo round against a throwaway store and prints
// the board, useful for eyeballing deck and placement behavior offline.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mine-games/mine/internal/cache/cachelru"
	"github.com/mine-games/mine/internal/database"
	roomDb "github.com/mine-games/mine/internal/database/room/database"
	roundDb "github.com/mine-games/mine/internal/database/round/database"
	"github.com/mine-games/mine/internal/logging"
	"github.com/mine-games/mine/internal/mine"
	"github.com/mine-games/mine/internal/mine/pubsub"
)

func main() {
	if err := realMain(); err != nil {
		logging.DefaultLogger().Fatalf("mine-cli: %v", err)
	}
}

func realMain() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir, err := os.MkdirTemp("", "mine-cli")
	if err != nil {
		return fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	db, err := database.NewFromEnv(ctx, &database.Config{FilePath: filepath.Join(dir, "mine.db")})
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close(ctx)

	roomCache, err := cachelru.NewLRU(16)
	if err != nil {
		return fmt.Errorf("lru: %w", err)
	}

	hub := pubsub.NewHub()
	hub.Run(ctx)

	config := &mine.Config{
		RoundsNum:      3,
		MinPlayers:     3,
		MaxPlayers:     10,
		PlayingTimeout: 0,
	}
	rooms := roomDb.New(db, roomCache)
	rounds := roundDb.New(db)

	manager := mine.NewManager(config, rooms, rounds, hub)
	go func() { _ = manager.Run(ctx) }()

	reply := manager.Execute(mine.Command{Type: mine.CommandJoinRoom, UserID: "host", Name: "Host"})
	if reply.Error != "" {
		return fmt.Errorf("create room: %s", reply.Error)
	}
	code := reply.Room

	for _, name := range []string{"Dasha", "Egor"} {
		if reply := manager.Execute(mine.Command{Type: mine.CommandJoinRoom, Room: code, UserID: name, Name: name}); reply.Error != "" {
			return fmt.Errorf("join: %s", reply.Error)
		}
	}

	if reply := manager.Execute(mine.Command{Type: mine.CommandStartGame, UserID: "host"}); reply.Error != "" {
		return fmt.Errorf("start: %s", reply.Error)
	}

	room, err := rooms.Fetch(code)
	if err != nil {
		return fmt.Errorf("fetch room: %w", err)
	}
	round, err := rounds.Fetch(code, room.CurrentRound)
	if err != nil {
		return fmt.Errorf("fetch round: %w", err)
	}

	fmt.Fprintf(os.Stdout, "room %s, round %d, deck %d cards\n\n", code, round.Index, len(round.Deck))
	fmt.Fprint(os.Stdout, mine.RenderBoard(&round.Board))
	fmt.Fprint(os.Stdout, "\n", mine.RenderStandings(&room))
	return nil
}
