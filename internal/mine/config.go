package mine

import (
	"time"

	"github.com/mine-games/mine/internal/database"
)

type Config struct {
	// Logging verbosity of the engine
	Debug bool `envconfig:"MINE_DEBUG" default:"false"`

	// Number of room snapshots kept in the read-through cache
	CacheSize int `envconfig:"MINE_CACHE_SIZE" default:"1024"`

	// Port on which the health check is served
	Port string `envconfig:"MINE_PORT" default:"1234"`

	// profile port
	ProfPort string `envconfig:"MINE_PROF_PORT" default:"8888"`

	// Rounds played per game
	RoundsNum int `envconfig:"MINE_ROUNDS_NUM" default:"3"`

	MinPlayers int `envconfig:"MINE_MIN_PLAYERS" default:"3"`
	MaxPlayers int `envconfig:"MINE_MAX_PLAYERS" default:"10"`

	// Waiting time for a room session to end before it is reaped
	PlayingTimeout time.Duration `envconfig:"MINE_PLAYING_TIMEOUT" default:"24h"`

	Db database.Config
}
